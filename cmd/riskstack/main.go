package main

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/api"
	"github.com/riskstack/riskstack/internal/shared"
)

func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	db, err := shared.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("failed to setup database connection"))
	}

	api.Start(db)
}
