// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/capigrow/internal/adapters/config"
	_ "go.trai.ch/capigrow/internal/adapters/gateway"
	_ "go.trai.ch/capigrow/internal/adapters/logger"
	_ "go.trai.ch/capigrow/internal/adapters/metrics"
	_ "go.trai.ch/capigrow/internal/adapters/session"
	_ "go.trai.ch/capigrow/internal/adapters/telemetry/progrock"
	// Register engine nodes.
	_ "go.trai.ch/capigrow/internal/engine/mutation"
	_ "go.trai.ch/capigrow/internal/engine/query"
	// Register resource nodes.
	_ "go.trai.ch/capigrow/internal/resources/auth"
	_ "go.trai.ch/capigrow/internal/resources/investments"
	_ "go.trai.ch/capigrow/internal/resources/notifications"
	_ "go.trai.ch/capigrow/internal/resources/profile"
	_ "go.trai.ch/capigrow/internal/resources/resource"
	_ "go.trai.ch/capigrow/internal/resources/transactions"
	_ "go.trai.ch/capigrow/internal/resources/verification"
	// Register app nodes.
	_ "go.trai.ch/capigrow/internal/app"
)
