package webmobile

// Feature is one row of a tier comparison table.
type Feature struct {
	Name      string `json:"feature"`
	Basic     bool   `json:"basic"`
	BasicPlus bool   `json:"basicPlus"`
	Advanced  bool   `json:"advanced"`
}

// IncludedIn reports whether the feature ships with tier t.
func (f Feature) IncludedIn(t Tier) bool {
	switch t {
	case TierBasic:
		return f.Basic
	case TierBasicPlus:
		return f.BasicPlus
	case TierAdvanced:
		return f.Advanced
	default:
		return false
	}
}

// WebsiteFeatures is the website tier table.
var WebsiteFeatures = []Feature{
	{Name: "Infra Setup (Staging)", Basic: true, BasicPlus: true, Advanced: true},
	{Name: "Backend Setup (Staging)", Basic: true, BasicPlus: true, Advanced: true},
	{Name: "Frontend Setup (Staging)", Basic: true, BasicPlus: true, Advanced: true},
	{Name: "Production Setup", Basic: true, BasicPlus: true, Advanced: true},
	{Name: "SI Content Middleware", BasicPlus: true, Advanced: true},
	{Name: "SI User Middleware", BasicPlus: true, Advanced: true},
	{Name: "SSO Integration", BasicPlus: true, Advanced: true},
	{Name: "Video Player Integration", BasicPlus: true, Advanced: true},
	{Name: "Fan Loyalty & Rewards", BasicPlus: true, Advanced: true},
	{Name: "Basic Navigation", Basic: true},
	{Name: "Advanced Navigation", BasicPlus: true, Advanced: true},
	{Name: "Match Centre (Basic)", Basic: true},
	{Name: "Match Centre (Advanced)", BasicPlus: true, Advanced: true},
	{Name: "Gaming Hub", BasicPlus: true, Advanced: true},
	{Name: "Shop & Tickets Integration", Basic: true, BasicPlus: true, Advanced: true},
	{Name: "Auction Centre", BasicPlus: true, Advanced: true},
	{Name: "GA4 Integration", Basic: true, BasicPlus: true, Advanced: true},
}

// MobileFeatures is the mobile app tier table.
var MobileFeatures = []Feature{
	{Name: "Infra & Backend Setup", Basic: true, BasicPlus: true, Advanced: true},
	{Name: "App Project Setup (iOS/Android)", Basic: true, BasicPlus: true, Advanced: true},
	{Name: "Push Notifications (Basic)", Basic: true},
	{Name: "Push Notifications (Advanced)", BasicPlus: true, Advanced: true},
	{Name: "Universal Linking", BasicPlus: true, Advanced: true},
	{Name: "Home & Lock Screen Widgets", Advanced: true},
	{Name: "Live Activities (Dynamic Island)", Advanced: true},
	{Name: "Splash Screen (Video/Lottie)", Basic: true, BasicPlus: true, Advanced: true},
	{Name: "Welcome Screen / Interests", BasicPlus: true, Advanced: true},
	{Name: "User Profile (SSO)", BasicPlus: true, Advanced: true},
	{Name: "Basic App Landing", Basic: true, BasicPlus: true, Advanced: true},
}

// FeatureRow is a table row as displayed for the selected tier.
type FeatureRow struct {
	Feature  string `json:"feature"`
	Included bool   `json:"included"`
}

// FeatureRows marks which rows of table are included in tier t.
func FeatureRows(table []Feature, t Tier) []FeatureRow {
	rows := make([]FeatureRow, 0, len(table))
	for _, f := range table {
		rows = append(rows, FeatureRow{Feature: f.Name, Included: f.IncludedIn(t)})
	}
	return rows
}

// IncludedCount returns how many rows of table ship with tier t.
func IncludedCount(table []Feature, t Tier) int {
	n := 0
	for _, f := range table {
		if f.IncludedIn(t) {
			n++
		}
	}
	return n
}
