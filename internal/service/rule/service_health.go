package rule

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

var _ ConnectivitySpec = (*ServiceHealthRule)(nil)

// ServiceHealthRule 探测服务的 /health 端点, 与 Docker healthcheck 的判定一致
type ServiceHealthRule struct {
	serviceName string
	baseURL     string
	cli         *http.Client
}

func NewServiceHealthRule(serviceName, baseURL string) *ServiceHealthRule {
	return &ServiceHealthRule{
		serviceName: serviceName,
		baseURL:     baseURL,
		cli: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

func (r *ServiceHealthRule) Satisfied(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", nil)
	if err != nil {
		return Reject(fmt.Sprintf("%s health check request failed: %v", r.serviceName, err))
	}

	resp, err := r.cli.Do(req)
	if err != nil {
		return Reject(fmt.Sprintf("%s is unreachable", r.serviceName))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Reject(fmt.Sprintf("%s reported status %d", r.serviceName, resp.StatusCode))
	}
	return OK()
}
