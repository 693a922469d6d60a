// Package config loads gridsync settings.
//
// Settings come from, in increasing precedence: built-in defaults, an
// optional YAML or TOML file, GRIDSYNC_* environment variables and values
// bound from command-line flags.
//
// # Configuration File Structure
//
//	log:
//	  level: info
//	  format: text
//	sync:
//	  max_effect_runs: 10000
//	server:
//	  addr: ":8080"
//	  read_buffer_size: 1024
//	  write_buffer_size: 1024
//	  write_timeout: 2s
//	  shutdown_timeout: 5s
//	  max_grids_per_conn: 16
//	demo:
//	  pages: 3
//	  columns: 3
//	  items: 50
//	  row_height: 4
//	  viewport_rows: 5
//	  scroll_idle: 150ms
//
// # Usage
//
//	cfg, err := config.Load(viper.New(), "")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
package config
