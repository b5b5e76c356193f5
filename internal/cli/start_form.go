package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/charmbracelet/huh"
)

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// newStartForm asks for whichever start fields are still blank. The
// project type is a select over the standard types unless one was given.
func newStartForm(in *domain.StartInput) *huh.Form {
	var fields []huh.Field
	if strings.TrimSpace(in.UserName) == "" {
		fields = append(fields, huh.NewInput().
			Title("Who is working?").
			Value(&in.UserName).
			Validate(requireText("user")))
	}
	if strings.TrimSpace(in.ClientName) == "" {
		fields = append(fields, huh.NewInput().
			Title("Client").
			Value(&in.ClientName).
			Validate(requireText("client")))
	}
	if strings.TrimSpace(in.ProjectType) == "" {
		options := make([]huh.Option[string], 0, len(domain.DefaultProjectTypes))
		for _, pt := range domain.DefaultProjectTypes {
			options = append(options, huh.NewOption(pt, pt))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Project type").
			Options(options...).
			Value(&in.ProjectType))
	}
	if strings.TrimSpace(in.ProjectName) == "" {
		fields = append(fields, huh.NewInput().
			Title("Project name").
			Description("Stored upper-case").
			Value(&in.ProjectName).
			Validate(requireText("project name")))
	}
	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(tallyHuhTheme()).
		WithShowHelp(false)
}
