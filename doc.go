// Package xmeans implements X-Means clustering: K-Means extended with
// automatic estimation of the number of clusters.
//
// The caller supplies a fixed dataset, initial candidate centers, and an
// upper bound on the cluster count. The algorithm alternates standard
// K-Means refinement with a structural search that tentatively splits each
// cluster into two and keeps the split only when a Bayesian-information-
// criterion-style score favors the children over the parent.
//
// # Quick Start
//
//	ctx := context.Background()
//	data, _ := dataset.New(points)
//	xm, _ := xmeans.New(data, [][]float64{{0, 0}}, 5, 0.025)
//	clustering, _ := xm.Run(ctx)
//	for i, members := range clustering.Clusters {
//	    fmt.Println(clustering.Centers[i], members)
//	}
//
// # Tuning
//
// Options control the refinement iteration cap, assignment parallelism, the
// squared-tolerance fast path, and the split seeding offset:
//
//	xm, _ := xmeans.New(data, seeds, 20, 0.025,
//	    xmeans.WithParallelism(runtime.GOMAXPROCS(0)),
//	    xmeans.WithSquaredTolerance(true),
//	    xmeans.WithLogLevel(slog.LevelDebug),
//	)
//
// # Persistence
//
// A finished clustering can be snapshotted through the persistence package
// to any blobstore.Store (local disk, memory, S3, MinIO):
//
//	mgr := persistence.NewManager(blobstore.NewLocalStore(dir))
//	_ = mgr.Save(ctx, "run-42", clustering)
//	_ = mgr.Publish(ctx, "run-42")
//
// Like all K-Means variants this is a local-search heuristic seeded by the
// given initial centers; no global optimality is guaranteed.
package xmeans
