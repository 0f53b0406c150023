package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix       = "<"
	choicePlaceholderSuffix       = ">"
	choiceSeparatorLiteral        = "|"
	choiceUsageEmptyTemplate      = "`%s`"
	choiceUsageFullTemplate       = "`%s` %s"
	choiceTypeName                = "choice"
	invalidChoiceErrorTemplate    = "invalid value %q: expected one of %s"
	choiceListSeparatorForMessage = ", "
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := buildChoicePlaceholder(defaultChoice, choices)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// ChoiceValue is a pflag.Value that accepts only one of a fixed set of case-insensitive choices.
type ChoiceValue struct {
	target  *string
	choices []string
}

// NewChoiceValue stores defaultChoice in target and returns a value restricted to choices.
func NewChoiceValue(target *string, defaultChoice string, choices []string) *ChoiceValue {
	*target = strings.ToLower(strings.TrimSpace(defaultChoice))
	normalizedChoices := make([]string, 0, len(choices))
	for _, choice := range choices {
		normalizedChoices = append(normalizedChoices, strings.ToLower(strings.TrimSpace(choice)))
	}
	return &ChoiceValue{target: target, choices: normalizedChoices}
}

// AddChoiceFlag registers a choice flag on flagSet with a usage string listing the choices.
func AddChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, shorthand string, defaultChoice string, choices []string, description string) {
	if flagSet == nil || len(name) == 0 {
		return
	}
	choiceValue := NewChoiceValue(target, defaultChoice, choices)
	usage := FormatChoiceUsage(defaultChoice, choices, description)
	if len(shorthand) > 0 {
		flagSet.VarP(choiceValue, name, shorthand, usage)
		return
	}
	flagSet.Var(choiceValue, name, usage)
}

// String returns the current choice.
func (choiceValue *ChoiceValue) String() string {
	if choiceValue == nil || choiceValue.target == nil {
		return ""
	}
	return *choiceValue.target
}

// Set validates and stores a choice.
func (choiceValue *ChoiceValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	for _, choice := range choiceValue.choices {
		if choice == normalizedValue {
			*choiceValue.target = normalizedValue
			return nil
		}
	}
	return fmt.Errorf(invalidChoiceErrorTemplate, rawValue, strings.Join(choiceValue.choices, choiceListSeparatorForMessage))
}

// Type names the flag value type for usage output.
func (choiceValue *ChoiceValue) Type() string {
	return choiceTypeName
}

func buildChoicePlaceholder(defaultChoice string, choices []string) string {
	highlightedChoices := highlightDefaultChoice(defaultChoice, choices)
	return choicePlaceholderPrefix + strings.Join(highlightedChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}

		displayValue := trimmedChoice
		if normalizedChoice == normalizedDefault && len(normalizedChoice) > 0 {
			displayValue = strings.ToUpper(trimmedChoice)
		}

		highlighted = append(highlighted, displayValue)
		seen[normalizedChoice] = struct{}{}
	}

	return highlighted
}
