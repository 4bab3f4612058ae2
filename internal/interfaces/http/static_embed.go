package http

import "embed"

// staticFiles - CSS и клиентский скрипт дашборда, встроенные в бинарник
//
//go:embed static
var staticFiles embed.FS
