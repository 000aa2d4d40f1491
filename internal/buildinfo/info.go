package buildinfo

var (
	// Version 构建时通过 ldflags 注入
	Version = "dev"
	// Commit 构建时通过 ldflags 注入
	Commit = "none"
	// Date 构建时通过 ldflags 注入
	Date = "unknown"
)
