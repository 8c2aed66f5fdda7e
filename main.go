// Package main Repospect API
//
//	@title			Repospect API
//	@version		1.0.0
//	@description	Repospect inspects git working copies found under a base directory
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host			localhost:3000
//	@BasePath		/api/v1
package main

import "github.com/repospect/repospect/internal"

//go:generate swag init --parseDependency --outputTypes go -g ./main.go -o ./internal/server/docs

func main() {
	internal.Run()
}
