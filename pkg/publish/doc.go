// Package publish exports rendered formulas as standalone HTML snapshots to
// S3.
//
// A snapshot is the rendered output of one successful result wrapped in a
// complete HTML document. Its key is derived from the source text and the
// render options, so publishing the same formula twice overwrites the same
// object. Input history is never exported.
//
//	pub, err := publish.NewFromConfig(ctx, "my-bucket", "snapshots/", "eu-west-1")
//	receipt, err := pub.Publish(ctx, p.Result(), opts)
//	fmt.Println(receipt.URI())
package publish
