package integrationtests

import "maps"

// baseFiles is a workspace with a project under test, two dependent
// libraries with build output, and a runtime library folder.
var baseFiles = map[string]string{
	"src/App.csproj":               "",
	"src/Program.cs":               "",
	"src/Services/Greeter.cs":      "",
	"src/bin/Debug/App.dll":        "",
	"tests/App.Tests.csproj":       "",
	"gac/mscorlib/v4/mscorlib.dll": "",
	"core/Core.csproj":             "",
	"core/bin/Debug/Core.dll":      "",
	"core/bin/Debug/Shared.dll":    "",
	"util/Util.csproj":             "",
	"util/bin/Debug/Util.dll":      "",
	"util/bin/Debug/Shared.dll":    "",
	"util/bin/Debug/Util.xml":      "",
}

func withProjectFile(hcl string) map[string]string {
	files := maps.Clone(baseFiles)
	files["buildprep.hcl"] = hcl
	return files
}
