package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tacogips/rptnew/internal/app"
	"github.com/tacogips/rptnew/internal/config"
	"github.com/tacogips/rptnew/internal/template/model"
)

// askOne is survey.AskOne, replaced in tests.
var askOne = survey.AskOne

// promptFilePage asks for the report location and file name.
func promptFilePage(page *app.FilePage) error {
	dir := page.Directory
	if err := askOne(&survey.Input{
		Message: "Location",
		Default: dir,
		Help:    "Directory the report is created in. It is created if missing.",
	}, &dir, survey.WithValidator(validatorFrom(config.ValidateLocation))); err != nil {
		return err
	}

	name := page.FileName
	if err := askOne(&survey.Input{
		Message: "File name",
		Default: name,
		Help:    "Report file name. The .rptdesign extension is added if missing.",
	}, &name, survey.WithValidator(validatorFrom(config.ValidateFileName))); err != nil {
		return err
	}

	page.Directory = dir
	page.FileName = name
	return nil
}

// promptTemplatePage asks for a template and whether to show its cheat sheet.
func promptTemplatePage(cat *model.Catalog, page *app.TemplatePage) error {
	if len(cat.Templates) == 0 {
		return fmt.Errorf("no templates available")
	}

	options := make([]string, len(cat.Templates))
	for i, t := range cat.Templates {
		options[i] = t.Title()
	}

	defaultIndex := 0
	if page.Template != nil {
		for i, t := range cat.Templates {
			if t.Name == page.Template.Name {
				defaultIndex = i
				break
			}
		}
	}

	var index int
	if err := askOne(&survey.Select{
		Message: "Template",
		Options: options,
		Default: defaultIndex,
		Description: func(value string, i int) string {
			return cat.Templates[i].Description
		},
	}, &index); err != nil {
		return err
	}
	page.Select(cat.Templates[index])

	if page.Template.CheatSheetID == "" {
		return nil
	}

	show := page.ShowCheatSheet
	if err := askOne(&survey.Confirm{
		Message: "Show the cheat sheet after creating the report?",
		Default: show,
	}, &show); err != nil {
		return err
	}
	page.ShowCheatSheet = show
	return nil
}

// promptSettings asks for the report metadata.
func promptSettings(settings *model.ReportSettings) error {
	questions := []*survey.Question{
		{
			Name: "DisplayName",
			Prompt: &survey.Input{
				Message: "Display name",
				Default: settings.DisplayName,
				Help:    "Title shown for the report.",
			},
		},
		{
			Name: "Description",
			Prompt: &survey.Input{
				Message: "Description",
				Default: settings.Description,
			},
		},
		{
			Name: "IconPath",
			Prompt: &survey.Input{
				Message: "Icon file",
				Default: settings.IconPath,
				Help:    "Image file used as the report icon (gif, png, jpg, bmp, ico).",
			},
		},
	}

	answers := *settings
	if err := ask(questions, &answers); err != nil {
		return err
	}
	*settings = answers
	return nil
}

// ask is survey.Ask, replaced in tests.
var ask = func(qs []*survey.Question, response interface{}) error {
	return survey.Ask(qs, response)
}

// validatorFrom adapts a string check to a survey validator.
func validatorFrom(check func(string) error) survey.Validator {
	return func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		return check(str)
	}
}
