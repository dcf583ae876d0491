// Package config loads repair run settings from YAML, HCL or JSON files.
//
//	            +-------------+
//	            |   Config    |
//	            |  (Settings) |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |            |            |
//	+-----+----+ +-----+----+ +-----+----+
//	|   YAML   | |   HCL    | |   JSON   |
//	|  Parser  | |  Parser  | |  Parser  |
//	+----------+ +----------+ +----------+
//
// A config names the tree to scan, which files to select, the declared
// encoding and the ordered rules. Rules come from built-in presets first, in
// the order listed, followed by the literal rules in file order.
//
// 🔍 Example (YAML):
//
//	root: ./site
//	include: ["**/*.html"]
//	exclude: ["vendor/**"]
//	encoding: utf-8
//	presets: [css]
//	rules:
//	  - old: "Ã‚Â©"
//	    new: "©"
//
// 🔍 Example (HCL):
//
//	root    = "./site"
//	presets = ["mojibake"]
//	rule {
//	  old = "color:}"
//	  new = "}"
//	}
//
// HCL expressions can read the environment through the env object, for
// example root = env.SITE_ROOT. Patterns in HCL are template strings, so a
// literal "${" must be written "$${".
package config
