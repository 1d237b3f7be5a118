// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/rosterboard/internal/markup"
	"github.com/jeranaias/rosterboard/internal/roster"
)

func TestNew_LoadingState(t *testing.T) {
	doc := New()

	if !doc.List.Loading {
		t.Error("new document should be loading")
	}
	if len(doc.Selector.Options) != 1 || !doc.Selector.Options[0].IsPlaceholder() {
		t.Errorf("Options = %v, want only the placeholder", doc.Selector.Options)
	}
	if doc.Message.Visible {
		t.Error("message should start hidden")
	}
}

func TestSelector_RebuildDoesNotDuplicate(t *testing.T) {
	doc := New()
	out := markup.Render(roster.NewSnapshot(roster.Activity{Name: "A"}, roster.Activity{Name: "B"}))

	for i := 0; i < 3; i++ {
		doc.Selector.Rebuild(out.Options)
	}

	if len(doc.Selector.Options) != 3 {
		t.Errorf("len(Options) = %d, want 3", len(doc.Selector.Options))
	}
}

func TestSelector_RebuildDropsVanishedSelection(t *testing.T) {
	doc := New()
	doc.Selector.Rebuild(markup.Render(roster.NewSnapshot(roster.Activity{Name: "A"})).Options)
	doc.Selector.Selected = "A"

	doc.Selector.Rebuild(markup.Render(roster.NewSnapshot(roster.Activity{Name: "A"})).Options)
	if doc.Selector.Selected != "A" {
		t.Errorf("Selected = %q, want A to survive", doc.Selector.Selected)
	}

	doc.Selector.Rebuild(markup.Render(roster.NewSnapshot(roster.Activity{Name: "B"})).Options)
	if doc.Selector.Selected != "" {
		t.Errorf("Selected = %q, want placeholder", doc.Selector.Selected)
	}
}

func TestSelector_StepWraps(t *testing.T) {
	doc := New()
	doc.Selector.Rebuild(markup.Render(roster.NewSnapshot(roster.Activity{Name: "A"}, roster.Activity{Name: "B"})).Options)

	doc.Selector.Step(1)
	if doc.Selector.Selected != "A" {
		t.Errorf("Selected = %q, want A", doc.Selector.Selected)
	}
	doc.Selector.Step(2)
	if doc.Selector.Selected != "" {
		t.Errorf("Selected = %q, want placeholder after wrap", doc.Selector.Selected)
	}
	doc.Selector.Step(-1)
	if doc.Selector.Selected != "B" {
		t.Errorf("Selected = %q, want B", doc.Selector.Selected)
	}
}

func TestList_ShowFailureClearsCards(t *testing.T) {
	doc := New()
	doc.List.ShowRoster(markup.Render(roster.NewSnapshot(roster.Activity{Name: "A", Participants: []string{"a@x.com"}})))
	if len(doc.List.Controls()) != 1 {
		t.Fatalf("Controls() = %v, want one control", doc.List.Controls())
	}

	doc.List.ShowFailure()

	if len(doc.List.Cards) != 0 {
		t.Errorf("Cards = %v, want none", doc.List.Cards)
	}
	if doc.List.HTML != markup.FailureHTML {
		t.Errorf("HTML = %q, want failure message", doc.List.HTML)
	}
	if !doc.List.Failed {
		t.Error("Failed should be set")
	}
}

func TestResetForm(t *testing.T) {
	doc := New()
	doc.Form.Email = "a@x.com"
	doc.Selector.Selected = "A"

	doc.ResetForm()

	if doc.Form.Email != "" || doc.Selector.Selected != "" {
		t.Errorf("form not cleared: email=%q selected=%q", doc.Form.Email, doc.Selector.Selected)
	}
	if doc.Form.Resets != 1 {
		t.Errorf("Resets = %d, want 1", doc.Form.Resets)
	}
}

func TestExportHTML(t *testing.T) {
	doc := New()
	out := markup.Render(roster.NewSnapshot(roster.Activity{Name: "Chess & Go", MaxParticipants: 2}))
	doc.List.ShowRoster(out)
	doc.Selector.Rebuild(out.Options)
	doc.Message = Message{Text: "<oops>", Kind: "error", Visible: true}

	page := doc.ExportHTML(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<h4>Chess &amp; Go</h4>",
		`<option value="Chess &amp; Go">Chess &amp; Go</option>`,
		`<div id="message" class="error">&lt;oops&gt;</div>`,
		`content="2025-01-02T03:04:05Z"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("ExportHTML() missing %q", want)
		}
	}
}
