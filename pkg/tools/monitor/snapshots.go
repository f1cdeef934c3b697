package monitor

import (
	"fmt"
	"time"
)

// snapshotReport returns a canned health report for well-known services.
// The snapshots mirror the monitoring system's text report format so the
// agent's parsing behaves the same against live and offline data.
func snapshotReport(serviceName string) string {
	now := time.Now().Format("2006-01-02 15:04:05")

	switch serviceName {
	case "order-service":
		return fmt.Sprintf(`=== Service Health Report: order-service ===
Generated at: %s

[Infrastructure]
- Primary DB: db-primary-01 (MySQL 8.0)
- Replica DB: db-replica-01, db-replica-02
- Cache: redis-cluster-01

[Current Status: DEGRADED]
- Service uptime: 99.2%% (last 24h)
- Current error rate: 2.5%%
- Avg response time: 450ms (normal: 120ms)
- Active connections: 1,247

[Today's Incidents]
- 09:15 - Database connection pool exhaustion (resolved)
- 10:30 - High latency detected, auto-scaling triggered
- 10:45 - Connection pool size increased from 50 to 100
Total incidents today: 15

[Resource Usage]
- CPU: 78%% (warning threshold: 80%%)
- Memory: 6.2GB / 8GB (77.5%%)
- DB Connections: 95/100 (95%% - CRITICAL)

[Recommendations]
- Consider increasing connection pool size
- Review slow queries in the last hour
- Monitor for potential memory leak
`, now)

	case "auth-service":
		return fmt.Sprintf(`=== Service Health Report: auth-service ===
Generated at: %s

[Infrastructure]
- Auth servers: auth-01, auth-02, auth-03 (load balanced)
- Token store: Redis Sentinel cluster

[Current Status: HEALTHY]
- Service uptime: 99.99%% (last 24h)
- Current error rate: 0.1%%
- Avg response time: 45ms
- Active sessions: 23,456

[Today's Incidents]
- 08:30 - Routine certificate rotation (planned)
- 09:15 - 2 expired token rejections (normal behavior)
Total incidents today: 2

[Resource Usage]
- CPU: 25%%
- Memory: 2.1GB / 4GB (52.5%%)
- Redis connections: 45/200 (22.5%%)

[Notes]
- All systems operating normally
- No action required
`, now)

	case "payment-service":
		return fmt.Sprintf(`=== Service Health Report: payment-service ===
Generated at: %s

[Infrastructure]
- Payment gateway: Stripe API
- Fallback gateway: PayPal API (inactive)
- Transaction DB: payment-db-01

[Current Status: DOWN - CRITICAL]
- Service uptime: 54.8%% (last 24h)
- Current error rate: 45.2%%
- Avg response time: TIMEOUT
- Failed transactions: 1,247 (last hour)

[Today's Incidents]
- 12:00 - Stripe API intermittent failures started
- 13:30 - Error rate exceeded 10%%, alerts triggered
- 14:00 - Circuit breaker activated
- 14:15 - Stripe status page confirms outage
- 14:22 - All payment requests failing
Total incidents today: 128

[External Dependencies]
- Stripe API Status: MAJOR OUTAGE (https://status.stripe.com)
- Estimated recovery: Unknown

[URGENT ACTIONS REQUIRED]
1. Consider activating PayPal fallback gateway
2. Notify customers of payment delays
3. Queue failed transactions for retry
4. Contact Stripe support for ETA
`, now)

	default:
		return fmt.Sprintf(`=== Service Health Report: %s ===
Generated at: %s

[Status: UNKNOWN]
Service not found in monitoring system.
Please verify the service name and try again.
`, serviceName, now)
	}
}
