// Package plan holds the static reference data for customer plans and the
// eligibility engine that gates feature access on plan membership.
//
// One canonical tier vocabulary is used throughout: Bronze < Silver < Gold.
// Legacy plan names from the billing stack (basic, starter, pro, max) are
// accepted as aliases when extracting a requested plan from free text.
package plan

import (
	"sort"
	"strings"
)

// Tier is a subscription plan tier. Tiers are totally ordered by Hierarchy.
type Tier string

const (
	Bronze Tier = "Bronze"
	Silver Tier = "Silver"
	Gold   Tier = "Gold"
)

// Hierarchy orders tiers from lowest to highest.
var Hierarchy = []Tier{Bronze, Silver, Gold}

// Features holds the feature sets of one tier. Included and Optional are
// disjoint; the top tier has an empty Optional set.
type Features struct {
	Included map[string]struct{}
	Optional map[string]struct{}
}

func set(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Catalog maps each tier to its feature sets.
var Catalog = map[Tier]Features{
	Bronze: {
		Included: set(
			"General Balance PDF",
			"Reports",
			"Track",
			"Commercial Checking Statement",
			"Commercial Savings Statement",
			"Commercial Foreign Account Statement",
			"Customer Insight Statement",
			"Billable Notifications",
			"Non-Billable Notifications",
		),
		Optional: set(
			"Reject Payments & Modify Notices",
			"Deposit Correction",
			"Account Balance Direct API",
		),
	},
	Silver: {
		Included: set(
			"General Balance PDF",
			"Previous Day Combined Balance Detail",
			"Track",
			"Detailed Reports",
			"Intraday Balance",
			"Image Basic",
			"Commercial Checking Statement",
			"Commercial Savings Statement",
			"Commercial Foreign Account Statement",
			"Customer Insight Statement",
			"Billable Notifications",
			"Non-Billable Notifications",
		),
		Optional: set(
			"DDA Periodic Statement Non-PDF",
			"Reject Payments & Modify Notices",
			"Deposit Correction",
			"Account Balance Direct API",
			"Account Balance Portal",
			"Payment Detail Direct API",
			"Payment Detail Portal",
			"Image Expanded",
			"Payment Expanded Detail",
			"Yesterday Reports",
			"Transmitted EBS",
			"Direct BAI Standard",
			"Intraday Expanded Detail",
			"Direct BAI Premium",
			"Deposit Detail",
			"Present Day Reports",
			"History Expanded Detail",
			"Payments GBF",
		),
	},
	Gold: {
		Included: set(
			"General Balance PDF",
			"Previous Day Combined Balance Detail",
			"DDA Periodic Statement Non-PDF",
			"Track",
			"Image Basic",
			"Image Expanded",
			"Commercial Checking Statement",
			"Commercial Savings Statement",
			"Commercial Foreign Account Statement",
			"Customer Insight Statement",
			"Account Balance Direct API",
			"Account Balance Portal",
			"Payment Detail Direct API",
			"Payment Detail Portal",
			"Payment Expanded Detail",
			"Yesterday Reports",
			"Transmitted EBS",
			"Direct BAI Standard",
			"Intraday Expanded Detail",
			"Direct BAI Premium",
			"Deposit Detail",
			"Present Day Reports",
			"History Expanded Detail",
			"Payments GBF",
			"Billable Notifications",
			"Non-Billable Notifications",
			"Reject Payments & Modify Notices",
			"Deposit Correction",
		),
		Optional: set(),
	},
}

// customers is the static plan assignment table. Read-only at runtime.
var customers = map[string]Tier{
	"cust_001":      Bronze,
	"cust_002":      Silver,
	"cust_003":      Gold,
	"cust_004":      Gold,
	"cust_005":      Bronze,
	"cust_007":      Silver,
	"USR-AstroZen":  Gold,
	"USR-NebulaX":   Silver,
	"USR-StellarQ":  Bronze,
	"USR-LunaSky":   Bronze,
	"USR-Cosmosia":  Silver,
	"USR-OrionEdge": Silver,
}

// noPaymentOnFile lists demo customers without a stored payment method;
// they cannot upgrade to the top tier until one is added.
var noPaymentOnFile = map[string]struct{}{
	"cust_002": {},
}

// featureSynonyms maps canonical feature names to free-text phrases users
// actually type.
var featureSynonyms = map[string][]string{
	"General Balance PDF":                  {"general balance", "balance pdf", "daily balance"},
	"Previous Day Combined Balance Detail": {"previous day balance", "yesterday balance", "combined balance"},
	"Image Basic":                          {"check images", "cheque images", "deposit images"},
	"Image Expanded":                       {"expanded images", "all images"},
	"Intraday Expanded Detail":             {"intraday balance", "real time balance", "live balance"},
	"Payment Expanded Detail":              {"payment expanded", "detailed payment"},
	"Payments GBF":                         {"gbf", "gbf payments"},
	"Reports":                              {"wire reports"},
	"Detailed Reports":                     {"wire detailed reports"},
}

// planAliases maps lowercase plan names, including the legacy billing
// vocabulary, onto canonical tiers. Order matters: first alias found in the
// text wins.
var planAliases = []struct {
	Alias string
	Tier  Tier
}{
	{"bronze", Bronze},
	{"silver", Silver},
	{"gold", Gold},
	{"basic", Bronze},
	{"starter", Silver},
	{"pro", Gold},
	{"max", Gold},
}

// Pricing is the simulated monthly price per tier in USD.
var Pricing = map[Tier]float64{
	Bronze: 0.0,
	Silver: 19.0,
	Gold:   49.0,
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := Catalog[t]
	return ok
}

// Next returns the next higher tier, or false at the ceiling.
func Next(t Tier) (Tier, bool) {
	for i, h := range Hierarchy {
		if h == t && i < len(Hierarchy)-1 {
			return Hierarchy[i+1], true
		}
	}
	return "", false
}

// Price returns the simulated monthly price for a tier.
func Price(t Tier) float64 {
	return Pricing[t]
}

// LookupCustomer resolves a customer ID by case-insensitive substring match
// against the fixed customer table.
func LookupCustomer(query string) (string, bool) {
	q := strings.ToLower(query)
	for id := range customers {
		if strings.Contains(q, strings.ToLower(id)) {
			return id, true
		}
	}
	return "", false
}

// TierOf returns the plan tier of a known customer.
func TierOf(customerID string) (Tier, bool) {
	t, ok := customers[customerID]
	return t, ok
}

// HasPaymentOnFile reports whether the customer has a stored payment method.
func HasPaymentOnFile(customerID string) bool {
	_, missing := noPaymentOnFile[customerID]
	return !missing
}

// ExtractFeature resolves a free-text phrase to a canonical feature name via
// the synonym table.
func ExtractFeature(query string) (string, bool) {
	q := strings.ToLower(query)
	// Deterministic iteration: longest-phrase match first, then lexical.
	type hit struct {
		canonical string
		phrase    string
	}
	var best *hit
	for canonical, phrases := range featureSynonyms {
		for _, phrase := range phrases {
			if !strings.Contains(q, phrase) {
				continue
			}
			if best == nil || len(phrase) > len(best.phrase) ||
				(len(phrase) == len(best.phrase) && canonical < best.canonical) {
				best = &hit{canonical: canonical, phrase: phrase}
			}
		}
	}
	if best == nil {
		return "", false
	}
	return best.canonical, true
}

// RequestedPlan extracts the target tier from free text via the alias table.
// Absent any alias the default is the top tier, matching the historical
// default of "pro".
func RequestedPlan(text string) Tier {
	t := strings.ToLower(text)
	for _, a := range planAliases {
		if strings.Contains(t, a.Alias) {
			return a.Tier
		}
	}
	return Gold
}

// allFeatures returns the union of a tier's included and optional sets.
func allFeatures(t Tier) map[string]struct{} {
	f := Catalog[t]
	u := make(map[string]struct{}, len(f.Included)+len(f.Optional))
	for k := range f.Included {
		u[k] = struct{}{}
	}
	for k := range f.Optional {
		u[k] = struct{}{}
	}
	return u
}

// UpgradeBenefits computes the next tier above current and the sorted list of
// features the customer would gain: the next tier's full feature set minus
// everything the current tier already carries.
func UpgradeBenefits(current Tier) (Tier, []string, bool) {
	next, ok := Next(current)
	if !ok {
		return "", nil, false
	}
	have := allFeatures(current)
	var gained []string
	for f := range allFeatures(next) {
		if _, held := have[f]; !held {
			gained = append(gained, f)
		}
	}
	sort.Strings(gained)
	return next, gained, true
}
