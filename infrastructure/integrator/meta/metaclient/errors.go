package metaclient

import (
	"fmt"
	"strings"

	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
)

// ParseErrorResponse tenta parsear um erro da API do Meta
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// classifyError converte uma resposta de erro nos erros da plataforma
func classifyError(status int, body []byte) error {
	errorResp, parseErr := ParseErrorResponse(body)
	if parseErr == nil && errorResp.Error.Code != 0 {
		detail := fmt.Sprintf("código %d, subcódigo %d: %s", errorResp.Error.Code, errorResp.Error.ErrorSubcode, errorResp.Error.Message)
		switch {
		case errorResp.IsTokenExpired():
			return fmt.Errorf("%w: %s", platform.ErrTokenExpired, detail)
		case errorResp.IsThrottled():
			return fmt.Errorf("%w: %s", platform.ErrThrottled, detail)
		}
		return fmt.Errorf("erro na resposta da API. Status: %d, %s", status, detail)
	}

	if containsTokenExpirationMessage(string(body)) {
		return fmt.Errorf("%w: %s", platform.ErrTokenExpired, truncate(body))
	}

	return fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", status, truncate(body))
}

// containsTokenExpirationMessage verifica se a mensagem contém indicação de token expirado
func containsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
