package entity

import (
	"errors"
	"testing"

	"github.com/cinepedia/scraper/pkg/common"
)

func TestSanitizeUID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Movie_Vertigo", want: "movie_vertigo"},
		{name: "strips quotes", in: `movie_"vertigo"`, want: "movie_vertigo"},
		{name: "strips apostrophes", in: "person_d'artagnan", want: "person_dartagnan"},
		{name: "removes accents and symbols", in: "movie_amélie!", want: "movie_amlie"},
		{name: "keeps underscore and dash", in: "woa_la-haine_1995", want: "woa_la-haine_1995"},
		{name: "empty stays empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeUID(tc.in)
			if got != tc.want {
				t.Errorf("SanitizeUID(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := SanitizeUID(got); again != got {
				t.Errorf("SanitizeUID is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestDeriveEntityUID(t *testing.T) {
	t.Run("derives from source id", func(t *testing.T) {
		uid, err := DeriveEntityUID(common.BaseInfo{
			Title:      "Vertigo",
			SourceID:   "Sueurs froides",
			EntityType: common.EntityTypeMovie,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uid != "movie_sueurs_froides" {
			t.Errorf("uid = %q, want %q", uid, "movie_sueurs_froides")
		}
	})

	t.Run("defaults entity type", func(t *testing.T) {
		uid, err := DeriveEntityUID(common.BaseInfo{Title: "Vertigo", SourceID: "Vertigo"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uid != "woa_vertigo" {
			t.Errorf("uid = %q, want %q", uid, "woa_vertigo")
		}
	})

	t.Run("preset uid is only sanitized", func(t *testing.T) {
		uid, err := DeriveEntityUID(common.BaseInfo{Title: "Vertigo", UID: `Movie_"Vertigo"`})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uid != "movie_vertigo" {
			t.Errorf("uid = %q, want %q", uid, "movie_vertigo")
		}
	})

	t.Run("missing identity errors", func(t *testing.T) {
		_, err := DeriveEntityUID(common.BaseInfo{Title: "Vertigo"})
		if !errors.Is(err, ErrMissingIdentity) {
			t.Errorf("err = %v, want ErrMissingIdentity", err)
		}
	})
}

func TestAssignUID(t *testing.T) {
	t.Run("singleton component", func(t *testing.T) {
		s := &Summary{}
		s.ParentUID = "movie_vertigo"
		AssignUID(s)
		if s.UID != "movie_vertigo_summary" {
			t.Errorf("uid = %q, want %q", s.UID, "movie_vertigo_summary")
		}
	})

	t.Run("preset uid untouched", func(t *testing.T) {
		s := &Summary{}
		s.UID = "custom_uid"
		s.ParentUID = "movie_vertigo"
		AssignUID(s)
		if s.UID != "custom_uid" {
			t.Errorf("uid = %q, want %q", s.UID, "custom_uid")
		}
	})

	t.Run("actor keyed by name", func(t *testing.T) {
		a := &Actor{FullName: "James Stewart"}
		a.ParentUID = "movie_vertigo"
		AssignUID(a)
		if a.UID != "movie_vertigo_actor_james_stewart" {
			t.Errorf("uid = %q, want %q", a.UID, "movie_vertigo_actor_james_stewart")
		}

		b := &Actor{FullName: "James Stewart", Roles: []string{"Scottie"}}
		b.ParentUID = "movie_vertigo"
		AssignUID(b)
		if b.UID != a.UID {
			t.Errorf("same actor derived different uids: %q vs %q", a.UID, b.UID)
		}
	})

	t.Run("influence keyed by members regardless of order", func(t *testing.T) {
		x := &Influence{Persons: []string{"Boileau", "Narcejac"}}
		x.ParentUID = "movie_vertigo"
		AssignUID(x)

		y := &Influence{Persons: []string{"Narcejac", "Boileau"}}
		y.ParentUID = "movie_vertigo"
		AssignUID(y)

		if x.UID != y.UID {
			t.Errorf("member order changed uid: %q vs %q", x.UID, y.UID)
		}

		z := &Influence{Persons: []string{"Hitchcock"}}
		z.ParentUID = "movie_vertigo"
		AssignUID(z)
		if z.UID == x.UID {
			t.Errorf("distinct influences collided on uid %q", z.UID)
		}
	})
}
