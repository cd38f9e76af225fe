package testutil

// ServerManifest declares a small family of configuration types used across
// package tests.
const ServerManifest = `
configuration "maia.example.Server" {
  description = "HTTP server"

  property "host" {
    type        = string
    description = "listen address"
  }
  property "port" {
    type    = number
    default = 8080
  }
  property "debug" {
    type = bool
  }
  property "ratio" {
    type = number
  }
  property "tags" {
    type = list(string)
  }
  property "tls" {
    configuration = "maia.example.TLS"
  }
}

configuration "maia.example.TLS" {
  property "cert" {
    type = string
  }
  property "key" {
    type     = string
    optional = true
  }
}
`
