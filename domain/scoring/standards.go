package scoring

import (
	"math"
	"sort"
	"strings"

	"ndisaudit/domain/audit"
)

// NdisStandard is a named regulatory category from the NDIS Practice
// Standards that groups related indicators for compliance scoring.
type NdisStandard struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// keywordGroup associates substring keywords with a practice standard.
// Groups are scanned in declaration order and the first match wins, so an
// indicator containing keywords from several groups resolves to the earliest
// declared group. Keep this order stable: reordering changes classification.
type keywordGroup struct {
	keywords []string
	standard NdisStandard
}

// standardKeywords is the ordered keyword table for classifying indicator
// text onto practice standards.
var standardKeywords = []keywordGroup{
	{[]string{"person-centred", "person centred", "individual support need"},
		NdisStandard{"6", "Person-Centred Supports"}},
	{[]string{"values", "beliefs", "cultural", "identity"},
		NdisStandard{"7", "Individual Values and Beliefs"}},
	{[]string{"privacy", "dignity", "confidential", "personal information"},
		NdisStandard{"8", "Privacy and Dignity"}},
	{[]string{"informed choice", "independence", "decision making", "decision-making"},
		NdisStandard{"9", "Independence and Informed Choice"}},
	{[]string{"violence", "abuse", "neglect", "exploitation", "discrimination"},
		NdisStandard{"10", "Violence, Abuse, Neglect, Exploitation and Discrimination"}},
	{[]string{"governance", "board", "strategic plan", "organisational structure", "delegation"},
		NdisStandard{"11", "Governance and Operational Management"}},
	{[]string{"risk management", "risk register", "risk assessment"},
		NdisStandard{"12", "Risk Management"}},
	{[]string{"quality management", "continuous improvement", "internal audit"},
		NdisStandard{"13", "Quality Management"}},
	{[]string{"information management", "records management", "data breach", "record keeping"},
		NdisStandard{"14", "Information Management"}},
	{[]string{"complaint", "feedback"},
		NdisStandard{"15", "Feedback and Complaints Management"}},
	{[]string{"incident", "reportable"},
		NdisStandard{"16", "Incident Management"}},
	{[]string{"police check", "worker screening", "recruitment", "qualification", "training", "supervision", "performance review", "human resource"},
		NdisStandard{"17", "Human Resource Management"}},
	{[]string{"continuity of support", "continuity plan", "interruption"},
		NdisStandard{"18", "Continuity of Supports"}},
	{[]string{"emergency", "disaster"},
		NdisStandard{"19", "Emergency and Disaster Management"}},
	{[]string{"access to support", "waiting list", "eligibility"},
		NdisStandard{"20", "Access to Supports"}},
	{[]string{"support plan", "assessment of need", "goal"},
		NdisStandard{"21", "Support Planning"}},
	{[]string{"service agreement"},
		NdisStandard{"22", "Service Agreements with Participants"}},
	{[]string{"responsive support", "review of support"},
		NdisStandard{"23", "Responsive Support Provision"}},
	{[]string{"transition", "exit", "referral"},
		NdisStandard{"24", "Transitions to or from a Provider"}},
	{[]string{"safe environment", "hazard", "infection control", "work health"},
		NdisStandard{"25", "Safe Environment"}},
	{[]string{"money", "property", "financial abuse", "participant fund"},
		NdisStandard{"26", "Participant Money and Property"}},
	{[]string{"medication", "medicine"},
		NdisStandard{"27", "Management of Medication"}},
	{[]string{"mealtime", "nutrition", "swallowing", "dysphagia"},
		NdisStandard{"28", "Mealtime Management"}},
}

// standardDivisions maps each standard number onto its division of the
// practice standards for display grouping and ordering.
var standardDivisions = map[string]string{
	"6": "Rights and Responsibilities", "7": "Rights and Responsibilities",
	"8": "Rights and Responsibilities", "9": "Rights and Responsibilities",
	"10": "Rights and Responsibilities",
	"11": "Provider Governance and Operational Management", "12": "Provider Governance and Operational Management",
	"13": "Provider Governance and Operational Management", "14": "Provider Governance and Operational Management",
	"15": "Provider Governance and Operational Management", "16": "Provider Governance and Operational Management",
	"17": "Provider Governance and Operational Management", "18": "Provider Governance and Operational Management",
	"19": "Provider Governance and Operational Management",
	"20": "Provision of Supports", "21": "Provision of Supports",
	"22": "Provision of Supports", "23": "Provision of Supports",
	"24": "Provision of Supports",
	"25": "Support Provision Environment", "26": "Support Provision Environment",
	"27": "Support Provision Environment", "28": "Support Provision Environment",
}

// StandardFor classifies indicator text onto a practice standard by
// case-insensitive keyword substring match. The first matching keyword group
// wins; ok is false when no keyword is found.
func StandardFor(indicatorText string) (NdisStandard, bool) {
	text := strings.ToLower(indicatorText)
	for _, group := range standardKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(text, keyword) {
				return group.standard, true
			}
		}
	}
	return NdisStandard{}, false
}

// Division returns the practice standards division for a standard number, or
// an empty string for unknown numbers.
func Division(standardNumber string) string {
	return standardDivisions[standardNumber]
}

// StandardScore is the averaged compliance score for one practice standard.
type StandardScore struct {
	Standard     NdisStandard `json:"standard"`
	Division     string       `json:"division"`
	Responses    int          `json:"responses"`
	AverageScore float64      `json:"average_score"`
}

// AverageByStandard buckets responses by their matched practice standard and
// averages rating points to one decimal place. Responses whose text matches
// no standard are skipped. Results are ordered by standard number, which
// also groups them by division.
func AverageByStandard(responses []*audit.IndicatorResponse) []*StandardScore {
	buckets := map[string]*StandardScore{}
	totals := map[string]int{}

	for _, r := range responses {
		standard, ok := StandardFor(r.IndicatorText)
		if !ok {
			continue
		}
		bucket, exists := buckets[standard.Number]
		if !exists {
			bucket = &StandardScore{
				Standard: standard,
				Division: Division(standard.Number),
			}
			buckets[standard.Number] = bucket
		}
		bucket.Responses++
		totals[standard.Number] += r.Rating.Points()
	}

	scores := make([]*StandardScore, 0, len(buckets))
	for number, bucket := range buckets {
		avg := float64(totals[number]) / float64(bucket.Responses)
		bucket.AverageScore = math.Round(avg*10) / 10
		scores = append(scores, bucket)
	}

	sort.Slice(scores, func(i, j int) bool {
		return standardOrder(scores[i].Standard.Number) < standardOrder(scores[j].Standard.Number)
	})

	return scores
}

// standardOrder gives numeric ordering for standard numbers.
func standardOrder(number string) int {
	order := 0
	for _, c := range number {
		if c < '0' || c > '9' {
			return 0
		}
		order = order*10 + int(c-'0')
	}
	return order
}
