package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/itemed/internal/editor"
	"github.com/idilsaglam/itemed/internal/model"
	"github.com/idilsaglam/itemed/internal/ui"
)

func newListCmd(app *App) *cobra.Command {
	var (
		asJSON bool
		width  int
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print every item as a card",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			list := sess.items.Items()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			th := ui.Current()
			fmt.Fprintf(out, "%s   %s %d\n", th.Title.Render("Items"), th.Accent.Render("Total"), len(list))
			if len(list) == 0 {
				fmt.Fprintln(out, th.Muted.Render("no items"))
				fmt.Fprintln(out, th.Muted.Render("Tip: add with `itemed add`"))
				return nil
			}
			schema := sess.items.Schema()
			cards := make([]string, 0, len(list))
			for _, it := range list {
				cards = append(cards, ui.Card(it.ID, ui.ViewLines(editor.New(schema, it).Rows()), ui.CardIdle))
			}
			fmt.Fprintln(out, ui.Grid(cards, width))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print items as JSON")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap cards at this many columns")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a new item with empty values",
		Long:  "Append a new item with one empty value per parameter. --set PARAM=VALUE fills values right away.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			schema := sess.items.Schema()
			for _, a := range assignments {
				if _, ok := schema.Param(a.param); !ok {
					return fmt.Errorf("add: unknown param %d", a.param)
				}
			}

			it := sess.items.Add()
			if len(assignments) > 0 {
				it = applyEdits(schema, it, assignments)
				sess.items.Update(it)
			}
			if err := sess.backend.Put(cmd.Context(), it); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			app.logger.Info("item added", "item", it.ID)
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", it.ID))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "PARAM=VALUE to fill in (repeatable)")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove the item with the given id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("rm: not an item id: %s", args[0])
			}
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			if !sess.items.Remove(id) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Current().Muted.Render(fmt.Sprintf("no item #%d; nothing to remove", id)))
				return nil
			}
			if err := sess.backend.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			app.logger.Info("item removed", "item", id)
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed #%d", id))
			return nil
		},
	}
}

func newSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set ITEM PARAM VALUE",
		Short: "Change one parameter value of an item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("set: not an item id: %s", args[0])
			}
			param, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("set: not a param id: %s", args[1])
			}
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			schema := sess.items.Schema()
			if _, ok := schema.Param(param); !ok {
				return fmt.Errorf("set: unknown param %d", param)
			}
			it, ok := sess.items.Get(id)
			if !ok {
				return fmt.Errorf("set: no item #%d", id)
			}
			it = applyEdits(schema, it, []assignment{{param: param, value: args[2]}})
			sess.items.Update(it)
			if err := sess.backend.Put(cmd.Context(), it); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			app.logger.Info("item saved", "item", id, "param", param)
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("saved #%d", id))
			return nil
		},
	}
}

func newParamsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print the parameter schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := app.cfg.Schema()
			if err != nil {
				return err
			}
			th := ui.Current()
			lines := []string{th.Title.Render("Parameters")}
			for _, p := range schema.Params() {
				lines = append(lines, fmt.Sprintf("%s %s %s",
					th.Muted.Render(fmt.Sprintf("%3d", p.ID)), p.Name, th.Accent.Render(string(p.Type))))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
			return nil
		},
	}
}

type assignment struct {
	param int
	value string
}

func parseAssignments(raw []string) ([]assignment, error) {
	out := make([]assignment, 0, len(raw))
	for _, r := range raw {
		k, v, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want PARAM=VALUE", r)
		}
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("--set %q: not a param id", r)
		}
		out = append(out, assignment{param: id, value: v})
	}
	return out, nil
}

// applyEdits runs the same path as the form: edit, type, blur, save.
func applyEdits(schema model.Schema, it model.Item, edits []assignment) model.Item {
	ed := editor.New(schema, it)
	ed.Edit()
	for _, a := range edits {
		ed.SetDraft(a.param, a.value)
		ed.Blur(a.param)
	}
	return ed.Save()
}
