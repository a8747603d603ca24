package entity

import (
	"testing"

	"github.com/cinepedia/scraper/pkg/common"
)

func movieBase() common.BaseInfo {
	return common.BaseInfo{
		Title:      "Sueurs froides",
		Permalink:  "https://fr.wikipedia.org/wiki/Sueurs_froides",
		SourceID:   "Sueurs froides",
		EntityType: common.EntityTypeMovie,
	}
}

func TestComposeMovieRoutesParts(t *testing.T) {
	parts := []ExtractionResult{
		{Entity: &Specifications{DirectedBy: []string{"Alfred Hitchcock"}}, Score: 0.8},
		{Entity: &Summary{Content: "Un policier sujet au vertige.", Source: common.SynopsisSection}, Score: 0.7},
		{Entity: &Actor{FullName: "James Stewart", Roles: []string{"Scottie"}}, Score: 0.9},
		{Entity: &Actor{FullName: "Kim Novak", Roles: []string{"Madeleine"}}, Score: 0.9},
	}

	movie, err := ComposeMovie(movieBase(), parts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if movie.UID != "movie_sueurs_froides" {
		t.Errorf("uid = %q", movie.UID)
	}
	if movie.Type != common.EntityTypeMovie {
		t.Errorf("type = %q", movie.Type)
	}
	if movie.Specifications == nil || movie.Specifications.DirectedBy[0] != "Alfred Hitchcock" {
		t.Errorf("specifications = %+v", movie.Specifications)
	}
	if movie.Summary == nil || movie.Summary.UID != "movie_sueurs_froides_summary" {
		t.Errorf("summary = %+v", movie.Summary)
	}
	if len(movie.Actors) != 2 {
		t.Fatalf("actors = %d, want 2", len(movie.Actors))
	}
	for _, a := range movie.Actors {
		if a.ParentUID != movie.UID {
			t.Errorf("actor %q parent = %q", a.UID, a.ParentUID)
		}
	}
}

func TestComposeMovieMergesSameField(t *testing.T) {
	parts := []ExtractionResult{
		{Entity: &Summary{Content: "Version courte.", Source: common.SynopsisSection}, Score: 0.4},
		{Entity: &Summary{Content: "Une version bien plus complète du synopsis."}, Score: 0.8},
	}

	movie, err := ComposeMovie(movieBase(), parts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.Summary.Content != "Une version bien plus complète du synopsis." {
		t.Errorf("content = %q, want the higher-scored version", movie.Summary.Content)
	}
	// The lower-scored part still contributes the field the winner lacked.
	if movie.Summary.Source != common.SynopsisSection {
		t.Errorf("source = %q, want %q", movie.Summary.Source, common.SynopsisSection)
	}
}

func TestComposeMovieListReplacement(t *testing.T) {
	parts := []ExtractionResult{
		{Entity: &Actor{FullName: "James Stewart", Roles: []string{"Scottie"}}, Score: 0.3},
		{Entity: &Actor{FullName: "James Stewart", Roles: []string{"John Ferguson"}}, Score: 0.9},
	}

	movie, err := ComposeMovie(movieBase(), parts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movie.Actors) != 1 {
		t.Fatalf("actors = %d, want 1", len(movie.Actors))
	}
	// Strictly higher score replaces the list item outright.
	if len(movie.Actors[0].Roles) != 1 || movie.Actors[0].Roles[0] != "John Ferguson" {
		t.Errorf("roles = %v", movie.Actors[0].Roles)
	}
}

func TestComposeMovieDropsNoise(t *testing.T) {
	parts := []ExtractionResult{
		{Entity: &Summary{Content: "Un synopsis."}, Score: 0.5},
		{Entity: &Biography{Content: "Not a movie field."}, Score: 0.9},
	}

	movie, err := ComposeMovie(movieBase(), parts)
	if err != nil {
		t.Fatalf("unroutable part aborted composition: %v", err)
	}
	if movie.Summary == nil {
		t.Errorf("routable part was lost")
	}
}

func TestComposeMovieSkipsForeignParent(t *testing.T) {
	foreign := &Summary{Content: "Belongs elsewhere."}
	foreign.ParentUID = "movie_psychose"

	movie, err := ComposeMovie(movieBase(), []ExtractionResult{{Entity: foreign, Score: 0.9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.Summary != nil {
		t.Errorf("part with foreign parent was composed: %+v", movie.Summary)
	}
}

func TestComposeMovieRequiresIdentity(t *testing.T) {
	_, err := ComposeMovie(common.BaseInfo{Title: "Sans identité"}, nil)
	if err == nil {
		t.Fatal("expected error for missing identity")
	}
}

func TestComposePersonResolveAs(t *testing.T) {
	base := common.BaseInfo{
		Title:      "Kim Novak",
		Permalink:  "https://fr.wikipedia.org/wiki/Kim_Novak",
		SourceID:   "Kim Novak",
		EntityType: common.EntityTypePerson,
	}
	parts := []ExtractionResult{
		{Entity: &Characteristics{Gender: "female"}, Score: 0.6},
		{Entity: &VisibleFeatures{Traits: []string{"blonde"}}, Score: 0.4, ResolveAs: "characteristics"},
		{Entity: &Biography{Content: "Actrice américaine.", Childhood: &Childhood{Birthplace: "Chicago"}}, Score: 0.7},
	}

	person, err := ComposePerson(base, parts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if person.Characteristics == nil {
		t.Fatal("characteristics missing")
	}
	if person.Characteristics.Gender != "female" {
		t.Errorf("gender = %q", person.Characteristics.Gender)
	}
	if len(person.Characteristics.Traits) != 1 || person.Characteristics.Traits[0] != "blonde" {
		t.Errorf("resolved traits = %v", person.Characteristics.Traits)
	}
	if person.Biography == nil || person.Biography.Childhood == nil || person.Biography.Childhood.Birthplace != "Chicago" {
		t.Errorf("biography = %+v", person.Biography)
	}
}

func TestComposeScoreClamped(t *testing.T) {
	parts := []ExtractionResult{
		{Entity: &Summary{Content: "Un synopsis."}, Score: 1.7},
	}

	movie, err := ComposeMovie(movieBase(), parts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.Summary.Score != 1.0 {
		t.Errorf("score = %v, want clamped to 1.0", movie.Summary.Score)
	}
}

func TestRevalidateRoundTrip(t *testing.T) {
	movie, err := ComposeMovie(movieBase(), []ExtractionResult{
		{Entity: &Summary{Content: "Un synopsis."}, Score: 0.5},
		{Entity: &Actor{FullName: "James Stewart"}, Score: 0.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uid := movie.UID
	actorUID := movie.Actors[0].UID
	if err := movie.Revalidate(); err != nil {
		t.Fatalf("revalidate failed: %v", err)
	}
	if movie.UID != uid || movie.Actors[0].UID != actorUID {
		t.Errorf("revalidation changed uids: %q %q", movie.UID, movie.Actors[0].UID)
	}
}
