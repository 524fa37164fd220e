package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
	"philcali.me/barmanager/internal/editor"
	"philcali.me/barmanager/internal/exceptions"
	"philcali.me/barmanager/internal/notifications"
	"philcali.me/barmanager/internal/overview"
)

// printNotifier shows notifications on the command's output.
type printNotifier struct {
	out io.Writer
}

func (p printNotifier) Notify(_ context.Context, notification notifications.Notification) {
	fmt.Fprintf(p.out, "[%s] %s\n", notification.Level, notification.Message)
}

func notifier(cmd *cobra.Command) notifications.Notifier {
	return notifications.Fanout{
		notifications.Log{Logger: logger},
		printNotifier{out: cmd.ErrOrStderr()},
	}
}

func loadCatalog(cmd *cobra.Command) *editor.Catalog {
	loader := &editor.Loader{
		Source:   apiClient,
		Notifier: notifier(cmd),
		Logger:   logger,
	}
	return loader.Load(cmd.Context())
}

func loadDraft(cmd *cobra.Command, path string) (*editor.RecipeDraft, *editor.Catalog, error) {
	file, err := readYAML[DraftFile](path)
	if err != nil {
		return nil, nil, err
	}
	catalog := loadCatalog(cmd)
	draft, err := file.ToDraft(catalog, filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	return draft, catalog, nil
}

func printFields(out io.Writer, fields map[string]string) {
	keys := maps.Keys(fields)
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "  %s: %s\n", key, fields[key])
	}
}

func printOptions(out io.Writer, title string, options []editor.Option) {
	fmt.Fprintf(out, "%s:\n", title)
	for _, option := range options {
		if option.Disabled {
			fmt.Fprintf(out, "  (%s)\n", option.Label)
			continue
		}
		fmt.Fprintf(out, "  %-36s %s\n", option.Value, option.Label)
	}
}

func runCatalog(cmd *cobra.Command, args []string) error {
	catalog := loadCatalog(cmd)
	out := cmd.OutOrStdout()
	printOptions(out, "Ingredients", catalog.IngredientOptions())
	printOptions(out, "Glasses", catalog.GlassOptions())
	printOptions(out, "Garnishes", catalog.GarnishOptions())
	return nil
}

var errInvalidDraft = errors.New("draft is not valid")

func runValidate(cmd *cobra.Command, args []string) error {
	draft, _, err := loadDraft(cmd, args[0])
	if err != nil {
		return err
	}
	report := editor.Validate(draft)
	if !report.Valid() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has problems:\n", args[0])
		printFields(cmd.OutOrStdout(), report.Fields())
		return errInvalidDraft
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
	return nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	draft, catalog, err := loadDraft(cmd, args[0])
	if err != nil {
		return err
	}
	breakdown := editor.ComputePrice(draft, catalog)
	out := cmd.OutOrStdout()
	for _, line := range breakdown.Lines {
		fmt.Fprintf(out, "  step %d  %-24s %8s x %-8s = %s\n",
			line.StepIndex+1,
			line.IngredientName,
			line.Amount.String(),
			line.UnitPrice.StringFixed(4),
			line.Cost.StringFixed(2))
	}
	if breakdown.Garnish != nil {
		fmt.Fprintf(out, "  garnish %-30s = %s\n", breakdown.GarnishName, breakdown.Garnish.StringFixed(2))
	}
	fmt.Fprintf(out, "Total: %s\n", breakdown.Display())
	return nil
}

func navigator(cmd *cobra.Command) editor.Navigator {
	return editor.NavigatorFunc(func(path string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved, continue at %s\n", path)
	})
}

func runSubmit(cmd *cobra.Command, args []string) error {
	draft, _, err := loadDraft(cmd, args[0])
	if err != nil {
		return err
	}
	submitter := &editor.Submitter{
		Persister: apiClient,
		Notifier:  notifier(cmd),
		Navigator: navigator(cmd),
		Logger:    logger,
	}
	session := editor.NewSession(draft, submitter, logger)
	cocktail, err := session.Submit(cmd.Context())
	if err != nil {
		var invalid *editor.ValidationError
		if errors.As(err, &invalid) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s has problems:\n", args[0])
			printFields(cmd.OutOrStdout(), invalid.Report.Fields())
			return errInvalidDraft
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cocktail.Id, cocktail.Name)
	return nil
}

func runGarnish(cmd *cobra.Command, args []string) error {
	file, err := readYAML[GarnishFile](args[0])
	if err != nil {
		return err
	}
	draft, err := file.ToDraft(filepath.Dir(args[0]))
	if err != nil {
		return err
	}
	submitter := &editor.Submitter{
		Persister: apiClient,
		Notifier:  notifier(cmd),
		Navigator: navigator(cmd),
		Logger:    logger,
	}
	garnish, err := submitter.SubmitGarnish(cmd.Context(), draft)
	if err != nil {
		var invalid *editor.GarnishValidationError
		if errors.As(err, &invalid) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s has problems:\n", args[0])
			printFields(cmd.OutOrStdout(), invalid.Report.Fields())
			return errInvalidDraft
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", garnish.Id, garnish.Name)
	return nil
}

func writeDraft(out io.Writer, file DraftFile) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(file); err != nil {
		return err
	}
	return encoder.Close()
}

func runImport(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	found, err := external.Search(cmd.Context(), name)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return exceptions.NotFound("drink", name)
	}
	catalog := loadCatalog(cmd)
	draft, err := editor.FromExternal(found[0], catalog)
	if err != nil {
		return err
	}
	return writeDraft(cmd.OutOrStdout(), DraftFileFrom(draft, catalog))
}

func runExport(cmd *cobra.Command, args []string) error {
	cocktail, err := apiClient.GetCocktail(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	catalog := loadCatalog(cmd)
	return writeDraft(cmd.OutOrStdout(), DraftFileFrom(editor.FromCocktail(*cocktail), catalog))
}

func runCocktails(cmd *cobra.Command, args []string) error {
	cocktails, err := apiClient.ListCocktails(cmd.Context())
	if err != nil {
		return err
	}
	text := ""
	if len(args) > 0 {
		text = args[0]
	}
	out := cmd.OutOrStdout()
	for _, cocktail := range overview.Filter(cocktails, text) {
		fmt.Fprintf(out, "%-36s %-24s %8.2f  %s\n", cocktail.Id, cocktail.Name, cocktail.Price, cocktailTags(cocktail))
	}
	return nil
}
