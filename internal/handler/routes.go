package handler

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

// HealthPrefix mounts the health probes a second time inside the versioned API.
const HealthPrefix = APIV1Prefix + "/health"
