package ioc

// SrcNames lists the container keys the framework's own providers bind.
type SrcNames struct {
	Helpers    string
	Config     string
	Logger     string
	Components string
	Server     string
	Ace        string
	Telemetry  string
}

// Src contains the container keys for framework bindings.
var Src = SrcNames{
	Helpers:    "Ignitor/Src/Helpers",
	Config:     "Ignitor/Src/Config",
	Logger:     "Ignitor/Src/Logger",
	Components: "Ignitor/Src/Components",
	Server:     "Ignitor/Src/Server",
	Ace:        "Ignitor/Src/Ace",
	Telemetry:  "Ignitor/Src/Telemetry",
}

// ConventionalDirectories are registered on the resolver during boot.
var ConventionalDirectories = map[string]string{
	"httpControllers": "Controllers/Http",
	"wsControllers":   "Controllers/Ws",
	"models":          "Models",
	"modelHooks":      "Models/Hooks",
	"listeners":       "Listeners",
	"exceptions":      "Exceptions",
	"middleware":      "Middleware",
	"commands":        "Commands",
	"validators":      "Validators",
}
