// Package manifest loads configuration type descriptors from HCL files into a
// registry. It is responsible for file discovery, HCL parsing and the
// translation of HCL type expressions into cty types.
//
// A manifest declares one or more configuration types:
//
//	configuration "maia.example.Server" {
//	  description = "HTTP server"
//
//	  property "port" {
//	    type    = number
//	    default = 8080
//	  }
//	  property "tags" {
//	    type = list(string)
//	  }
//	  property "tls" {
//	    configuration = "maia.example.TLS"
//	  }
//	}
package manifest
