// Package hcl reads burstrank configuration files written in HCL.
//
// A file may contain an engine, an output and a progress block; every
// attribute is optional. Environment variables are visible to expressions
// through the env object:
//
//	engine {
//	  iterations     = 100
//	  buckets        = 1009
//	  damping_factor = 0.85
//	}
//
//	output {
//	  path   = "${env.HOME}/ranks.json"
//	  format = "json"
//	}
//
//	progress {
//	  url       = "http://localhost:3000"
//	  namespace = "/pagerank"
//	}
package hcl
