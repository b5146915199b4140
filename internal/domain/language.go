package domain

type Language int

const (
	LanguagePrimary Language = iota
	LanguageSecondary
)

func (l Language) Toggle() Language {
	if l == LanguagePrimary {
		return LanguageSecondary
	}

	return LanguagePrimary
}

func (l Language) String() string {
	switch l {
	case LanguagePrimary:
		return "primary"
	case LanguageSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}
