// Package app composes the micropost services into a running application.
//
// The package is a composition layer, not a business logic layer:
//
//	internal/app/
//	├── application.go      # Application struct and wiring
//	├── domain/             # Domain models (pure data structures)
//	│   ├── account/
//	│   └── message/
//	├── storage/            # Store interfaces + in-memory implementation
//	│   └── postgres/       # PostgreSQL implementation for production
//	├── services/           # Business rules and validation
//	│   ├── accounts/
//	│   └── messages/
//	└── httpapi/            # HTTP handlers and routing
//
// Services depend on the storage interfaces, handlers depend on services,
// and cmd/server selects concrete stores at startup.
package app
