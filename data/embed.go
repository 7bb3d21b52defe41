package data

import (
	_ "embed"
)

//go:embed authz/model.conf
var AuthzModel string

//go:embed authz/policy.csv
var AuthzPolicy string

//go:embed authz/panels.json
var Panels []byte
