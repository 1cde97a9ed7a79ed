// Command server runs the online game store API.
//
// With no subcommand it serves HTTP; `migrate` and `seed` manage the
// database. Configuration comes from the environment (and .env), see
// internal/config.
//
// @title Loja de Jogos Online API
// @version 1.0
// @description CRUD API for the game catalogue, its categories and developers, users and purchases.
// @BasePath /
package main

func main() {
	Execute()
}
