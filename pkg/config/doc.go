/*
Package config manages configuration parsing and validation for linepatch.

	            +-------------+
	            |   Config    |
	            |  (Patches)  |
	            +------+------+
	                   |
	   +--------+------+------+--------+
	   |        |             |        |
	+--+---+ +--+---+     +---+--+ +---+--+
	| YAML | | JSON |     | TOML | | HCL  |
	+------+ +------+     +------+ +------+

🎯 Purpose:
- Loads the list of patches (file, search phrase, insertion text)
- Picks a parser from the file extension
- Validates patches and normalizes paths
- Provides the built-in default when no file is present

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax (unknown fields are rejected)
3. Validates configuration values
4. Hands the validated config to the operation package

🔍 Example:

	cfg, err := config.Load(ctx, ".linepatch.yaml")
	if err != nil {
		return err
	}
	for _, p := range cfg.Patches {
		fmt.Println(p)
	}
*/
package config
