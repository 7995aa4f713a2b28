package main

import (
	"context"
	"logarun-export/cmd/logarun-export/commands"
	"logarun-export/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "logarun-export")
	commands.ExecuteContext(context.Background())
}
