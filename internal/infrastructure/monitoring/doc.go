/*
Package monitoring provides metrics collection for the manifest generator.

# Overview

Prometheus metrics for the state API, workflow actions, committed
mutations, manifest backend calls and the state stream. Each collector owns
its registry.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "getManifestInformation")
	err := fetch()
	timer.Stop(err)
*/
package monitoring
