package scrape

import (
	"testing"

	"github.com/cinepedia/scraper/pkg/common"
)

const samplePage = `<html><body>
<div id="content">
<p>Sueurs froides est un film américain réalisé par Alfred Hitchcock.</p>
<table class="infobox infobox_v3">
<tr><th>Réalisation</th><td>Alfred Hitchcock</td></tr>
<tr><th>Durée</th><td>2 heures 8 minutes</td></tr>
<tr><td><img src="/img/affiche-vertigo.jpg" alt="Affiche du film"/></td></tr>
</table>
<h2>Synopsis</h2>
<p>Scottie, un policier sujet au vertige, est engagé pour suivre Madeleine.</p>
<h2>Fiche technique</h2>
<p>Titre original : Vertigo</p>
<h3>Distribution</h3>
<ul><li>James Stewart : Scottie</li><li>Kim Novak : Madeleine</li></ul>
<h2>Analyse</h2>
<p>Le film s'inspire du roman de Boileau-Narcejac.</p>
<img src="/img/plan.jpg" alt="Plan du film"/>
</div>
</body></html>`

func TestSplitSections(t *testing.T) {
	sections, err := SplitSections([]byte(samplePage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byTitle := map[string]*common.Section{}
	var index func([]*common.Section)
	index = func(list []*common.Section) {
		for _, s := range list {
			byTitle[s.Title] = s
			index(s.Children)
		}
	}
	index(sections)

	t.Run("orphan intro", func(t *testing.T) {
		orphan, ok := byTitle[common.OrphanSectionTitle]
		if !ok {
			t.Fatal("no orphan section")
		}
		if orphan.Content == "" {
			t.Error("orphan section has no content")
		}
	})

	t.Run("infobox becomes its own section", func(t *testing.T) {
		infobox, ok := byTitle[common.InfoboxSectionTitle]
		if !ok {
			t.Fatal("no infobox section")
		}
		if infobox.Content == "" {
			t.Error("infobox has no content")
		}
		if len(infobox.Media) != 1 || infobox.Media[0].MediaType != "poster" {
			t.Errorf("infobox media = %+v", infobox.Media)
		}
	})

	t.Run("headings nest", func(t *testing.T) {
		sheet, ok := byTitle[common.TechnicalSheetSection]
		if !ok {
			t.Fatal("no technical sheet section")
		}
		if len(sheet.Children) != 1 || sheet.Children[0].Title != common.DistributionSection {
			t.Errorf("technical sheet children = %+v", sheet.Children)
		}
	})

	t.Run("content lands in its section", func(t *testing.T) {
		analysis, ok := byTitle[common.AnalysisSection]
		if !ok {
			t.Fatal("no analysis section")
		}
		if analysis.Content == "" {
			t.Error("analysis section has no content")
		}
		if len(analysis.Media) != 1 {
			t.Errorf("analysis media = %+v", analysis.Media)
		}
	})
}

func TestSplitSectionsEmptyPage(t *testing.T) {
	sections, err := SplitSections([]byte("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("sections = %d, want 0", len(sections))
	}
}
