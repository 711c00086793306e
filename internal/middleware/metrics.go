package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name. Cache and rate
// limiting fail open, so this counter is the main signal that Redis is down.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devlink_redis_errors_total",
	Help: "Total number of Redis command errors",
}, []string{"command"})

// GithubLookupErrors counts failed GitHub repository lookups.
var GithubLookupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "devlink_github_lookup_errors_total",
	Help: "Total number of failed GitHub profile lookups",
})
