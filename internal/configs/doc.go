// Package configs loads foltool's optional settings file.
//
// Settings are stored in TOML. The file is looked up at the path given by
// --config, otherwise foltool.toml in the working directory. When neither
// exists the defaults are used.
//
//	[archive]
//	name_encoding = "gbk"
//	default_output = "output.fol"
//
//	[scan]
//	exclude = ["**/*.key", "**/*.json", "**/.DS_Store"]
//
// Keys missing from the file keep their default values.
package configs
