// Package config loads application configuration rooted at the app root.
//
// Values come from the first of config/app.yml, config/app.yaml,
// config/config.yml or config.yml found under the root, then from a .env
// file next to it and the process environment. Environment variables map
// onto dotted keys by replacing "." with "_", so HTTP_PORT overrides
// http.port.
//
//	repo, err := config.Load(root)
//	port := repo.GetInt("http.port")
//
// Provider binds the repository into the container and re-initialises the
// global logger from the logging section.
package config
