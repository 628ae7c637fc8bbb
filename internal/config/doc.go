// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

// Package config loads MatTailor configuration with koanf.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. A .env file, loaded into the process environment with godotenv
//  3. A YAML file: $CONFIG_PATH, else config.yaml / config.yml in the working
//     directory, else /etc/mattailor/config.yaml
//  4. Environment variables listed in envMappings
//
// Common environment variables:
//
//	HTTP_HOST, HTTP_PORT (or HOST, PORT)   listen address, default 0.0.0.0:8000
//	ENVIRONMENT                            development, staging or production
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER      zerolog settings
//	CORS_ORIGINS                           comma-separated origins
//	RATE_LIMIT_PER_MINUTE, DISABLE_RATE_LIMIT
//	REDIS_URL                              enables the Redis cache tier
//	CACHE_TTL, CACHE_CAPACITY, CACHE_SWEEP_INTERVAL
//	WORKER_THREADS, REQUEST_TIMEOUT, DEFAULT_MAX_RESULTS, SIMILARITY_THRESHOLD
//	ENABLE_NLP_PROCESSING, ENABLE_SIMULATION, ENABLE_RL_PLANNING,
//	ENABLE_CACHING, ENABLE_ML_PREDICTION    feature flags, all on by default
//
// Durations use Go syntax ("90s", "1h").
package config
