// Package config provides configuration parsing for mathlive.
//
// The configuration is stored in mathlive.json, mathlive.yaml or
// mathlive.yml in the working directory. Every field is optional.
//
// # Configuration File Structure
//
//	render:
//	  preset: display            # display | inline
//	  strict: fail-on-error      # overrides the preset
//	  displayMode: block         # overrides the preset
//	  trust: true                # overrides the preset
//	  positionUnit: rune         # rune | byte | utf16
//	server:
//	  host: localhost
//	  port: 5173
//	  initial: '\frac{1}{2}'
//	  sanitize: true
//	log:
//	  level: info
//	  file: mathlive.log
//	metrics:
//	  enabled: true
//	  namespace: mathlive
//	publish:
//	  bucket: my-formulas
//	  prefix: snapshots/
//	  region: eu-west-1
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, err := cfg.RenderOptions()
package config
