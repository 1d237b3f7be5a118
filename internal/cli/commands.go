// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jeranaias/rosterboard/internal/app"
	"github.com/jeranaias/rosterboard/internal/config"
	"github.com/jeranaias/rosterboard/internal/confirm"
	"github.com/jeranaias/rosterboard/internal/markup"
	"github.com/jeranaias/rosterboard/internal/notify"
	"github.com/jeranaias/rosterboard/internal/ui/components"
	"github.com/jeranaias/rosterboard/internal/ui/styles"
	"github.com/jeranaias/rosterboard/internal/util"
)

// ErrJournalDisabled is returned by history when no journal is open.
var ErrJournalDisabled = errors.New("the mutation journal is disabled")

var errNoAnswer = errors.New("confirmation produced no answer")

// =============================================================================
// LIST
// =============================================================================

// HandleList loads the roster once and prints it as text, JSON or HTML.
func HandleList(ctx context.Context, env *Env, args Args) error {
	a := env.newApp(nil)
	result, err := RunFlow(ctx, a, a.Init())
	if err != nil {
		return err
	}

	doc := a.Document()
	if doc.List.Failed {
		return &FlowError{Command: "list", Text: doc.List.FailureText, Cause: result.Cause}
	}

	if args.JSON {
		data := make([]ActivityData, 0, len(doc.List.Cards))
		for _, act := range a.Store().Current().Activities() {
			data = append(data, ActivityData{
				Name:         act.Name,
				Description:  act.Description,
				Schedule:     act.Schedule,
				SpotsLeft:    act.SpotsLeft(),
				Participants: append([]string{}, act.Participants...),
			})
		}
		return NewJSONResponse("list", data, env.now()).Write(env.Stdout)
	}

	if args.HTML {
		html := doc.ExportHTML(env.now())
		if args.Out != "" {
			return writeOut(env, args.Out, html, len(doc.List.Cards))
		}
		if isTerminalWriter(env.Stdout) {
			html = components.Highlight(html, "html")
		}
		_, err = io.WriteString(env.Stdout, html+"\n")
		return err
	}

	if args.Out != "" {
		return writeOut(env, args.Out, formatCards(doc.List.Cards), len(doc.List.Cards))
	}
	if isTerminalWriter(env.Stdout) {
		theme := styles.NewTheme(env.Config.UI.Theme)
		layout := components.RenderCards(theme, doc.List.Cards, -1, terminalWidth(env.Stdout))
		_, err = io.WriteString(env.Stdout, layout.View+"\n")
		return err
	}
	_, err = io.WriteString(env.Stdout, formatCards(doc.List.Cards))
	return err
}

func writeOut(env *Env, path, content string, cards int) error {
	path, err := ValidateOutputPath(path)
	if err != nil {
		return NewUsageError(err.Error(), "rosterboard list --html --out roster.html")
	}
	if err := util.AtomicWriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(env.Stderr, "Wrote %d activities to %s\n", cards, path)
	return nil
}

// formatCards renders cards as plain text for pipes and files.
func formatCards(cards []markup.Card) string {
	var b strings.Builder
	for i, c := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(util.Sanitize(c.Name) + "\n")
		if c.Description != "" {
			b.WriteString("  " + util.Sanitize(c.Description) + "\n")
		}
		b.WriteString("  Schedule: " + util.Sanitize(c.Schedule) + "\n")
		b.WriteString("  Availability: " + strconv.Itoa(c.SpotsLeft) + " spots left\n")
		b.WriteString("  Participants (" + strconv.Itoa(c.Count) + "):\n")
		if len(c.Controls) == 0 {
			b.WriteString("    " + markup.NoParticipantsText + "\n")
		}
		for _, ctl := range c.Controls {
			b.WriteString("    - " + util.Sanitize(ctl.Email) + "\n")
		}
	}
	return b.String()
}

// rosterLine summarizes one activity after a mutation.
func rosterLine(a *app.App, activity string) string {
	act, ok := a.Store().Current().Get(activity)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s: %d participants, %d spots left",
		util.Sanitize(act.Name), act.Count(), act.SpotsLeft())
}

// =============================================================================
// SIGNUP AND UNREGISTER
// =============================================================================

// HandleSignup signs args.Email up for args.Activity and prints the
// notification the board would show.
func HandleSignup(ctx context.Context, env *Env, args Args) error {
	a := env.newApp(nil)
	doc := a.Document()
	doc.Selector.Selected = args.Activity
	doc.Form.Email = args.Email

	result, err := RunFlow(ctx, a, a.Signup())
	if err != nil {
		return err
	}
	return report(env, a, result, "signup", args.Activity, "")
}

// HandleUnregister removes args.Email from args.Activity after
// confirmation. --yes skips the prompt.
func HandleUnregister(ctx context.Context, env *Env, args Args) error {
	confirmer := env.Confirmer
	if confirmer == nil {
		if args.Yes {
			confirmer = confirm.Always(true)
		} else {
			confirmer = confirm.NewPrompt()
		}
	}

	// The answer is kept so a refused prompt fails the command instead of
	// ending silently.
	var answer confirm.AnswerMsg
	wrapped := confirm.Func(func(req confirm.Request) (bool, error) {
		cmd := confirmer.Confirm(req)
		if cmd == nil {
			answer = confirm.AnswerMsg{Request: req, Err: errNoAnswer}
		} else {
			answer, _ = cmd().(confirm.AnswerMsg)
		}
		return answer.Accepted, answer.Err
	})

	a := env.newApp(wrapped)
	result, err := RunFlow(ctx, a, a.Unregister(markup.Control{Activity: args.Activity, Email: args.Email}))
	if err != nil {
		return err
	}
	if answer.Err != nil {
		return answer.Err
	}
	if !answer.Accepted {
		fmt.Fprintln(env.Stdout, RenderStatus("declined")+" Cancelled; nothing was changed.")
		return nil
	}
	removed := fmt.Sprintf("Removed %s from %s", args.Email, args.Activity)
	return report(env, a, result, "unregister", args.Activity, removed)
}

// report prints the final notification, or done when the flow showed
// none. An error notification fails the command.
func report(env *Env, a *app.App, result FlowResult, command, activity, done string) error {
	msg := a.Document().Message
	if msg.Visible && msg.Kind == string(notify.KindError) {
		return &FlowError{Command: command, Text: msg.Text, Cause: result.Cause}
	}
	switch {
	case msg.Visible:
		fmt.Fprintf(env.Stdout, "%s %s\n", RenderStatus(msg.Kind), util.Sanitize(msg.Text))
	case done != "":
		fmt.Fprintf(env.Stdout, "%s %s\n", RenderStatus("ok"), util.Sanitize(done))
	}
	if line := rosterLine(a, activity); line != "" {
		fmt.Fprintln(env.Stdout, line)
	}
	return nil
}

// =============================================================================
// HISTORY
// =============================================================================

// HandleHistory prints the newest journal entries.
func HandleHistory(ctx context.Context, env *Env, args Args) error {
	if env.Journal == nil {
		return ErrJournalDisabled
	}
	entries, err := env.Journal.Recent(ctx, args.Limit)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	if args.JSON {
		data := make([]HistoryData, 0, len(entries))
		for _, e := range entries {
			data = append(data, HistoryData{
				ID:       e.ID,
				At:       e.At,
				Action:   string(e.Action),
				Activity: e.Activity,
				Email:    e.Email,
				Outcome:  string(e.Outcome),
				Status:   e.Status,
				Text:     e.Text,
			})
		}
		return NewJSONResponse("history", data, env.now()).Write(env.Stdout)
	}

	if len(entries) == 0 {
		fmt.Fprintln(env.Stdout, DimStyle.Render("No signups or removals recorded yet."))
		return nil
	}

	total, err := env.Journal.Count(ctx)
	if err != nil {
		return fmt.Errorf("count journal: %w", err)
	}

	fmt.Fprintln(env.Stdout, TitleStyle.Render("Recent changes"))
	fmt.Fprintln(env.Stdout, RenderSeparator(70))
	for _, e := range entries {
		line := fmt.Sprintf("%s %s  %-10s %s  %s",
			RenderStatus(string(e.Outcome)),
			e.At.Local().Format("2006-01-02 15:04:05"),
			e.Action,
			util.PadWidth(util.TruncateWidth(util.Sanitize(e.Activity), 24), 24),
			util.TruncateWidth(util.Sanitize(e.Email), 32),
		)
		if e.Text != "" {
			line += "  " + DimStyle.Render(util.TruncateWidth(util.Sanitize(e.Text), 40))
		}
		fmt.Fprintln(env.Stdout, line)
	}
	fmt.Fprintln(env.Stdout, DimStyle.Render(fmt.Sprintf("Showing %d of %d recorded changes", len(entries), total)))
	return nil
}

// =============================================================================
// CONFIG AND VERSION
// =============================================================================

// HandleConfig prints the effective configuration or its file location.
func HandleConfig(env *Env, args Args) error {
	if args.Subcommand == "path" {
		path := args.ConfigPath
		if path == "" {
			path = config.FindConfigFile()
		}
		if path == "" {
			fmt.Fprintln(env.Stdout, DimStyle.Render("No configuration file; using defaults."))
			return nil
		}
		fmt.Fprintln(env.Stdout, path)
		return nil
	}
	_, err := io.WriteString(env.Stdout, env.Config.String())
	return err
}

// HandleVersion prints version information.
func HandleVersion(w io.Writer) {
	PrintVersion(w)
}
