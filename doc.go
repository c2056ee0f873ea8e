// Package dtokit provides:
//
// - Field selection for records crossing a service boundary (SelectFields/Items)
// - Explicit record schemas with private/read-only field tags (Schema/Describe)
// - Three-state field values: set, explicit null, never provided (Unset)
// - Include/exclude rules over dotted paths, validated once at construction (Rule)
// - A stable error model via Issues (path, code, message)
//
// Design policy:
// - Keep the filtering API in the root package; HTTP error translation lives in exception/.
// - Place the net/http adapter under middleware/, YAML profiles under config/ and the CLI under cmd/dtokit.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := dtokit.Describe("User").
//		Field("name").
//		Field("password").Private().
//		Field("created_at").ReadOnly().
//		MustBuild()
//	read := dtokit.MustRule(nil, []string{"id", "address.street"})
//
//	obj, err := user.New(map[string]any{"name": "Litestar User", "password": "xyz"})
//	out := dtokit.SelectFields(obj, read, dtokit.Read, dtokit.SelectOpt{ExcludeEmpty: true})
//	body, err := out.MarshalJSON()
package dtokit
