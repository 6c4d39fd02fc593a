package metaclient

import (
	"net/http"
)

const (
	headerBusinessUseCaseUsage = "X-Business-Use-Case-Usage"
	headerAdAccountUsage       = "X-Ad-Account-Usage"
	headerAppUsage             = "X-App-Usage"
)

type appUsage struct {
	CallCount    float64 `json:"call_count"`
	TotalTime    float64 `json:"total_time"`
	TotalCPUTime float64 `json:"total_cputime"`
}

type adAccountUsage struct {
	AccIDUtilPct float64 `json:"acc_id_util_pct"`
}

type businessUseCaseUsage struct {
	Type         string  `json:"type"`
	CallCount    float64 `json:"call_count"`
	TotalTime    float64 `json:"total_time"`
	TotalCPUTime float64 `json:"total_cputime"`
}

// ParseUsage lê os cabeçalhos de uso da Graph API e retorna o maior percentual
// informado. ok é falso quando nenhum cabeçalho válido está presente.
func ParseUsage(header http.Header) (float64, bool) {
	var (
		highest float64
		found   bool
	)

	observe := func(values ...float64) {
		found = true
		for _, v := range values {
			highest = max(highest, v)
		}
	}

	if raw := header.Get(headerAppUsage); raw != "" {
		var u appUsage
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			observe(u.CallCount, u.TotalTime, u.TotalCPUTime)
		}
	}

	if raw := header.Get(headerAdAccountUsage); raw != "" {
		var u adAccountUsage
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			observe(u.AccIDUtilPct)
		}
	}

	if raw := header.Get(headerBusinessUseCaseUsage); raw != "" {
		var byBusiness map[string][]businessUseCaseUsage
		if err := json.Unmarshal([]byte(raw), &byBusiness); err == nil {
			for _, usages := range byBusiness {
				for _, u := range usages {
					observe(u.CallCount, u.TotalTime, u.TotalCPUTime)
				}
			}
		}
	}

	return highest, found
}
