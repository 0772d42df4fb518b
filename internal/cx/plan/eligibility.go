package plan

import "errors"

// Eligibility classifies a feature against a customer's plan.
type Eligibility string

const (
	Included     Eligibility = "INCLUDED"
	Optional     Eligibility = "OPTIONAL"
	NotAvailable Eligibility = "NOT_AVAILABLE"
)

var (
	ErrUnknownCustomer = errors.New("unknown customer")
	ErrUnknownFeature  = errors.New("unknown feature")
	ErrUnknownPlan     = errors.New("unknown plan")
)

// EligibilityResult explains whether a customer can use a feature today and,
// when they cannot, which tier first offers it.
type EligibilityResult struct {
	CustomerID  string      `json:"customer_id"`
	Plan        Tier        `json:"plan"`
	Feature     string      `json:"feature"`
	Eligibility Eligibility `json:"eligibility"`
	AvailableOn Tier        `json:"available_on,omitempty"`
}

// FeatureEligibility classifies a canonical feature against a customer's
// current plan. NOT_AVAILABLE results name the lowest tier carrying the
// feature, if any does.
func FeatureEligibility(customerID, feature string) (EligibilityResult, error) {
	tier, ok := TierOf(customerID)
	if !ok {
		return EligibilityResult{}, ErrUnknownCustomer
	}
	if !knownFeature(feature) {
		return EligibilityResult{}, ErrUnknownFeature
	}

	res := EligibilityResult{
		CustomerID: customerID,
		Plan:       tier,
		Feature:    feature,
	}

	f := Catalog[tier]
	if _, ok := f.Included[feature]; ok {
		res.Eligibility = Included
		return res, nil
	}
	if _, ok := f.Optional[feature]; ok {
		res.Eligibility = Optional
		return res, nil
	}

	res.Eligibility = NotAvailable
	for _, t := range Hierarchy {
		all := allFeatures(t)
		if _, ok := all[feature]; ok {
			res.AvailableOn = t
			break
		}
	}
	return res, nil
}

// CheckEligibility resolves a free-text query into a customer and feature and
// classifies the pair. The query must mention a known customer ID and a
// recognizable feature phrase.
func CheckEligibility(query string) (EligibilityResult, error) {
	customerID, ok := LookupCustomer(query)
	if !ok {
		return EligibilityResult{}, ErrUnknownCustomer
	}
	feature, ok := ExtractFeature(query)
	if !ok {
		return EligibilityResult{}, ErrUnknownFeature
	}
	return FeatureEligibility(customerID, feature)
}

// reportFeatures are the catalog features that grant wire report retrieval,
// broadest first. statementFeatures gate billing history access.
var (
	reportFeatures    = []string{"Reports", "Detailed Reports", "Present Day Reports", "Yesterday Reports"}
	statementFeatures = []string{"Commercial Checking Statement", "Customer Insight Statement"}
)

// ReportAccess classifies the customer's wire report entitlement. Callers
// must consult it before fetching wire events.
func ReportAccess(customerID string) (EligibilityResult, error) {
	return bestAccess(customerID, reportFeatures)
}

// StatementAccess classifies the customer's billing statement entitlement.
// Callers must consult it before fetching billing history.
func StatementAccess(customerID string) (EligibilityResult, error) {
	return bestAccess(customerID, statementFeatures)
}

// bestAccess returns the strongest eligibility among the candidate features:
// the first INCLUDED result, else an OPTIONAL one, else NOT_AVAILABLE.
func bestAccess(customerID string, features []string) (EligibilityResult, error) {
	var best EligibilityResult
	for i, f := range features {
		res, err := FeatureEligibility(customerID, f)
		if err != nil {
			return EligibilityResult{}, err
		}
		if res.Eligibility == Included {
			return res, nil
		}
		if i == 0 || (best.Eligibility == NotAvailable && res.Eligibility == Optional) {
			best = res
		}
	}
	return best, nil
}

func knownFeature(feature string) bool {
	for _, t := range Hierarchy {
		if _, ok := allFeatures(t)[feature]; ok {
			return true
		}
	}
	return false
}
