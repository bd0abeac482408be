package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// This file defines the Prometheus metrics exposed by the application.

// httpRequestsTotal counts HTTP requests served by this process, partitioned
// by path, method and response status code.
var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "skylook_http_requests_total",
	Help: "Total number of HTTP requests by path, method and code.",
}, []string{"path", "method", "code"})

// lookupsTotal counts finished lookups by outcome: ready, ready_fallback
// (forecast substituted synthetically), error, rejected (blank input, no
// network call) or superseded (result discarded in favor of a newer lookup).
var lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "skylook_lookups_total",
	Help: "Total number of weather lookups by outcome.",
}, []string{"outcome"})

// upstreamRequestsTotal counts calls to the upstream weather API by endpoint
// (current or forecast) and result: an HTTP status code, transport_error, or
// throttled when the local rate limiter refused admission.
var upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "skylook_upstream_requests_total",
	Help: "Total number of upstream weather API requests by endpoint and status.",
}, []string{"endpoint", "status"})
