package githubapi

import (
	"fmt"
	"strings"
)

const (
	accountTypeUnknownLabelConstant         = "unknown"
	accountTypeUserLabelConstant            = "user"
	accountTypeOrganisationLabelConstant    = "organisation"
	usersPathSegmentConstant                = "users"
	organisationsPathSegmentConstant        = "orgs"
	accountTypeEmptyErrorMessageConstant    = "account type must be provided"
	accountTypeInvalidErrorTemplateConstant = "account type %q is not supported"
)

// AccountType distinguishes GitHub user accounts from organisations.
type AccountType int

// Supported account types. AccountTypeUnknown marks an absent value.
const (
	AccountTypeUnknown AccountType = iota
	AccountTypeUser
	AccountTypeOrganisation
)

var accountTypeAliases = map[string]AccountType{
	"user":         AccountTypeUser,
	"users":        AccountTypeUser,
	"org":          AccountTypeOrganisation,
	"orgs":         AccountTypeOrganisation,
	"organisation": AccountTypeOrganisation,
	"organization": AccountTypeOrganisation,
}

// ParseAccountType normalizes textual account type values.
func ParseAccountType(accountTypeValue string) (AccountType, error) {
	trimmedValue := strings.TrimSpace(accountTypeValue)
	if len(trimmedValue) == 0 {
		return AccountTypeUnknown, fmt.Errorf(accountTypeEmptyErrorMessageConstant)
	}

	accountType, known := accountTypeAliases[strings.ToLower(trimmedValue)]
	if !known {
		return AccountTypeUnknown, fmt.Errorf(accountTypeInvalidErrorTemplateConstant, accountTypeValue)
	}

	return accountType, nil
}

// IsKnown reports whether the account type identifies a user or an organisation.
func (accountType AccountType) IsKnown() bool {
	return accountType == AccountTypeUser || accountType == AccountTypeOrganisation
}

// PathSegment resolves the REST API segment for the account type.
func (accountType AccountType) PathSegment() string {
	if accountType == AccountTypeOrganisation {
		return organisationsPathSegmentConstant
	}
	return usersPathSegmentConstant
}

func (accountType AccountType) String() string {
	switch accountType {
	case AccountTypeUser:
		return accountTypeUserLabelConstant
	case AccountTypeOrganisation:
		return accountTypeOrganisationLabelConstant
	default:
		return accountTypeUnknownLabelConstant
	}
}

// UnmarshalText allows configuration decoders to populate AccountType values.
// Blank input decodes to AccountTypeUnknown.
func (accountType *AccountType) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*accountType = AccountTypeUnknown
		return nil
	}

	parsedAccountType, parseError := ParseAccountType(string(text))
	if parseError != nil {
		return parseError
	}

	*accountType = parsedAccountType
	return nil
}

// MarshalText renders the account type label.
func (accountType AccountType) MarshalText() ([]byte, error) {
	return []byte(accountType.String()), nil
}
