// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

/*
Package main is the entry point for the MatTailor AI backend.

The server recommends materials for a set of engineering requirements,
analyses trade-offs between candidates, predicts properties for custom
compositions and keeps a history of planning sessions.

# Application Architecture

Components run under a Suture v4 supervisor tree:

	RootSupervisor ("mattailor")
	├── CacheSupervisor ("cache-layer")
	│   └── Cache sweeper (expires recommendation results)
	├── EventSupervisor ("event-layer")
	│   └── Event router (watermill, feeds the audit log)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Start-up order:

 1. Configuration: Koanf v2 over defaults, .env, config.yaml and environment
 2. Logging: zerolog, json or console
 3. Catalog: embedded seed or CATALOG_SEED_PATH
 4. Cache: in-memory LRU, with a Redis tier when REDIS_URL is set
 5. Engine: recommender, trade-off analyzer, NLP processor, simulator, planner
 6. Events: in-process bus, router and audit log
 7. HTTP: chi router with CORS, rate limiting and Prometheus metrics

# Configuration

Common variables:

	HOST / HTTP_HOST          listen host (default 0.0.0.0)
	PORT / HTTP_PORT          listen port (default 8000)
	ENVIRONMENT               development, staging or production
	CORS_ORIGINS              comma-separated origins
	RATE_LIMIT_PER_MINUTE     per-IP request budget (default 60)
	CACHE_TTL                 result cache TTL (default 1h)
	REDIS_URL                 optional shared cache tier
	ENABLE_ML_PREDICTION      /simulate endpoints
	ENABLE_RL_PLANNING        /plan endpoints
	ENABLE_NLP_PROCESSING     /parse and query enhancement
	ENABLE_CACHING            recommendation result cache
	ENABLE_SIMULATION         simulated properties on recommendations
	LOG_LEVEL / LOG_FORMAT    zerolog settings

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within SHUTDOWN_TIMEOUT, the event router stops, and
the Redis connection is closed.

# Example Usage

	export PORT=8000
	export LOG_FORMAT=console
	./mattailor-server

	curl -s localhost:8000/api/v1/recommend \
	  -d '{"requirements":{"max_density":3},"max_results":5}'
*/
package main
