package main

import (
	"context"

	"collegecost-backend/cmd/collegecost-cli/cmd"
)

func main() {
	cmd.ExecuteContext(context.Background())
}
