package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/agentcost/internal/model"
)

// FormValues holds the simple-mode answers while the form is running.
type FormValues struct {
	ModelID      int
	Requests     string
	InputLength  model.LengthPreset
	OutputLength model.LengthPreset
	UseCase      model.UseCase
}

// DefaultFormValues pre-selects the first model, 100 requests a day and the
// medium presets.
func DefaultFormValues(models []model.Model) *FormValues {
	v := &FormValues{
		Requests:     "100",
		InputLength:  model.LengthMedium,
		OutputLength: model.LengthMedium,
		UseCase:      model.UseCaseSimpleQA,
	}
	if len(models) > 0 {
		v.ModelID = models[0].ID
	}
	return v
}

// Input converts the answers to a SimpleInput.
func (v *FormValues) Input() (model.SimpleInput, error) {
	n, err := parseRequests(v.Requests)
	if err != nil {
		return model.SimpleInput{}, err
	}
	return model.SimpleInput{
		ModelID:       v.ModelID,
		DailyRequests: n,
		InputLength:   v.InputLength,
		OutputLength:  v.OutputLength,
		UseCase:       v.UseCase,
	}, nil
}

func parseRequests(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errors.New("enter a number of requests")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if n < 0 {
		return 0, errors.New("requests cannot be negative")
	}
	return n, nil
}

// UseCaseLabels describes each use case in the form.
var UseCaseLabels = []struct {
	UseCase model.UseCase
	Label   string
}{
	{model.UseCaseSimpleQA, "Simple Q&A (main model only)"},
	{model.UseCaseKnowledgeSearch, "Knowledge search (RAG)"},
	{model.UseCaseCustomerSupport, "Customer support (RAG, history, routing)"},
	{model.UseCaseGeneralAssistant, "General assistant (everything incl. web search)"},
}

// NewSimpleForm builds the five-question quick estimate form over models.
func NewSimpleForm(models []model.Model, v *FormValues) *huh.Form {
	modelOpts := make([]huh.Option[int], len(models))
	for i, m := range models {
		modelOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", m.Name, m.ProviderName), m.ID)
	}

	lengthOpts := func(chars map[model.LengthPreset]string) []huh.Option[model.LengthPreset] {
		return []huh.Option[model.LengthPreset]{
			huh.NewOption("Short "+chars[model.LengthShort], model.LengthShort),
			huh.NewOption("Medium "+chars[model.LengthMedium], model.LengthMedium),
			huh.NewOption("Long "+chars[model.LengthLong], model.LengthLong),
		}
	}

	useCaseOpts := make([]huh.Option[model.UseCase], len(UseCaseLabels))
	for i, uc := range UseCaseLabels {
		useCaseOpts[i] = huh.NewOption(uc.Label, uc.UseCase)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("agentcost").
				Description("Quick estimate of a chat agent's monthly LLM bill.\nPress Enter to continue."),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Main model").
				Options(modelOpts...).
				Height(10).
				Value(&v.ModelID),
			huh.NewInput().
				Title("Requests per day").
				Value(&v.Requests).
				Validate(func(s string) error {
					_, err := parseRequests(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[model.LengthPreset]().
				Title("User message length").
				Options(lengthOpts(map[model.LengthPreset]string{
					model.LengthShort: "(~200 chars)", model.LengthMedium: "(~1,000 chars)", model.LengthLong: "(~3,000 chars)",
				})...).
				Value(&v.InputLength),
			huh.NewSelect[model.LengthPreset]().
				Title("Answer length").
				Options(lengthOpts(map[model.LengthPreset]string{
					model.LengthShort: "(~500 chars)", model.LengthMedium: "(~1,500 chars)", model.LengthLong: "(~3,000 chars)",
				})...).
				Value(&v.OutputLength),
			huh.NewSelect[model.UseCase]().
				Title("Use case").
				Options(useCaseOpts...).
				Value(&v.UseCase),
		),
	).WithShowHelp(false)
}
