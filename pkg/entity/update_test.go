package entity

import (
	"errors"
	"reflect"
	"testing"
)

func TestUpdateComponent(t *testing.T) {
	t.Run("uid mismatch keeps current", func(t *testing.T) {
		current := &Summary{Content: "kept"}
		current.UID = "movie_a_summary"
		candidate := &Summary{Content: "other entity"}
		candidate.UID = "movie_b_summary"

		got, err := UpdateComponent(current, candidate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != Component(current) {
			t.Errorf("expected current instance back, got %#v", got)
		}
	})

	t.Run("complementary fields fill in", func(t *testing.T) {
		current := &Summary{Content: "A thriller."}
		current.UID = "movie_a_summary"
		current.Score = 0.9
		candidate := &Summary{Source: "Synopsis"}
		candidate.UID = "movie_a_summary"
		candidate.Score = 0.1

		got, err := UpdateComponent(current, candidate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		merged := got.(*Summary)
		if merged.Content != "A thriller." || merged.Source != "Synopsis" {
			t.Errorf("merged = %+v", merged)
		}
		if merged.UID != "movie_a_summary" || merged.Score != 0.9 {
			t.Errorf("meta not retained from current: %+v", merged.ComponentMeta)
		}
	})

	t.Run("conflicting scalar obeys score", func(t *testing.T) {
		current := &Specifications{ReleaseDate: "1958"}
		current.UID = "movie_a_specifications"
		current.Score = 0.3
		candidate := &Specifications{ReleaseDate: "1958-05-09"}
		candidate.UID = "movie_a_specifications"
		candidate.Score = 0.7

		got, err := UpdateComponent(current, candidate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.(*Specifications).ReleaseDate != "1958-05-09" {
			t.Errorf("release date = %q, want candidate value", got.(*Specifications).ReleaseDate)
		}
	})

	t.Run("lists union", func(t *testing.T) {
		current := &Specifications{Genres: []string{"thriller", "drama"}}
		current.UID = "movie_a_specifications"
		current.Score = 0.9
		candidate := &Specifications{Genres: []string{"drama", "romance"}}
		candidate.UID = "movie_a_specifications"
		candidate.Score = 0.1

		got, err := UpdateComponent(current, candidate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"thriller", "drama", "romance"}
		if !reflect.DeepEqual(got.(*Specifications).Genres, want) {
			t.Errorf("genres = %v, want %v", got.(*Specifications).Genres, want)
		}
	})

	t.Run("invalid reconstruction soft-fails", func(t *testing.T) {
		current := &Characteristics{Gender: "female"}
		current.UID = "person_a_characteristics"
		current.Score = 0.2
		candidate := &Characteristics{Gender: "unknown"}
		candidate.UID = "person_a_characteristics"
		candidate.Score = 0.9

		got, err := UpdateComponent(current, candidate)
		if !errors.Is(err, ErrIncompatibleMerge) {
			t.Fatalf("err = %v, want ErrIncompatibleMerge", err)
		}
		if got != Component(current) {
			t.Errorf("expected current instance back on merge failure")
		}
		if got.(*Characteristics).Gender != "female" {
			t.Errorf("current was mutated: %+v", got)
		}
	})

	t.Run("nil sides", func(t *testing.T) {
		c := &Summary{Content: "only"}
		c.UID = "movie_a_summary"

		if got, err := UpdateComponent(nil, c); err != nil || got != Component(c) {
			t.Errorf("UpdateComponent(nil, c) = %v, %v", got, err)
		}
		if got, err := UpdateComponent(c, nil); err != nil || got != Component(c) {
			t.Errorf("UpdateComponent(c, nil) = %v, %v", got, err)
		}
	})
}
