package domain

import (
	"fmt"
	"strings"
)

type Domain string

const (
	DomainHeart     Domain = "heart"
	DomainDiabetes  Domain = "diabetes"
	DomainParkinson Domain = "parkinson"
)

// Domains lists the supported diagnosis domains in presentation order.
func Domains() []Domain {
	return []Domain{DomainHeart, DomainDiabetes, DomainParkinson}
}

func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DomainHeart, DomainDiabetes, DomainParkinson:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

// DisplayName is the disease name used in user-facing messages.
func (d Domain) DisplayName() string {
	switch d {
	case DomainHeart:
		return "Heart Disease"
	case DomainDiabetes:
		return "Diabetes"
	case DomainParkinson:
		return "Parkinson's Disease"
	}
	return string(d)
}

// FeatureVector is one subject's measurements in the domain's field order.
type FeatureVector []float64

type RiskLabel string

const (
	RiskLabelNoRisk      RiskLabel = "no_risk"
	RiskLabelAtRisk      RiskLabel = "at_risk"
	RiskLabelUnavailable RiskLabel = "unavailable"
)

// RiskLabelFromClass maps a binary classifier output to a risk label.
// The encoding 1 = at risk, 0 = no risk is fixed for every domain.
func RiskLabelFromClass(class int) (RiskLabel, error) {
	switch class {
	case 0:
		return RiskLabelNoRisk, nil
	case 1:
		return RiskLabelAtRisk, nil
	}
	return "", fmt.Errorf("%w: got %d", ErrUnexpectedClass, class)
}

// Message returns the user-facing sentence for a diagnosis outcome.
func (l RiskLabel) Message(d Domain) string {
	switch l {
	case RiskLabelAtRisk:
		if d == DomainParkinson {
			return "The person has a risk of Parkinson's Disease."
		}
		return fmt.Sprintf("High risk of %s!", d.DisplayName())
	case RiskLabelNoRisk:
		if d == DomainParkinson {
			return "The person does not have a risk of Parkinson's Disease."
		}
		return fmt.Sprintf("No risk of %s detected.", d.DisplayName())
	case RiskLabelUnavailable:
		return fmt.Sprintf("%s prediction is currently unavailable.", d.DisplayName())
	}
	return ""
}

// Availability describes whether a domain can serve diagnoses.
type Availability struct {
	Domain    Domain
	Available bool
	Reason    string
}

const Disclaimer = "This tool is for informational purposes only. Consult a medical professional for diagnosis."
