// Package config loads the livehooks host configuration.
//
// The configuration lives in livehooks.yaml (or livehooks.yml /
// livehooks.json) next to the binary or in the directory given to Load.
// Durations are written as Go duration strings. Fields left out keep their
// defaults.
//
// # Configuration File Structure
//
//	server:
//	  address: ":8080"
//	  path: /live
//	  readTimeout: 60s
//	  writeTimeout: 10s
//	  heartbeat: 30s
//	  maxQueue: 256
//	  maxSessions: 0
//	  devMode: false
//	datepicker:
//	  debounce: 100ms
//	  coalesce: 150ms
//	  locale: es
//	flash:
//	  dismissAfter: 8s
//	metrics:
//	  enabled: true
//	  namespace: livehooks
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Address)
package config
