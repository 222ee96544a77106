package hcl

// fileRoot is the top-level shape of a configuration file. Unknown blocks
// and attributes are rejected by the decoder.
type fileRoot struct {
	Engine   *engineBlock   `hcl:"engine,block"`
	Output   *outputBlock   `hcl:"output,block"`
	Progress *progressBlock `hcl:"progress,block"`
}

type engineBlock struct {
	Iterations    *int     `hcl:"iterations,optional"`
	Buckets       *int     `hcl:"buckets,optional"`
	BaseRank      *float64 `hcl:"base_rank,optional"`
	DampingFactor *float64 `hcl:"damping_factor,optional"`
}

type outputBlock struct {
	Path   *string `hcl:"path,optional"`
	Format *string `hcl:"format,optional"`
}

type progressBlock struct {
	URL                *string `hcl:"url,optional"`
	Namespace          *string `hcl:"namespace,optional"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,optional"`
}
