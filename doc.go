// Package otp is a control-and-client layer for the OpenTripPlanner engine,
// an external multi-modal journey planner that runs as a separate Java
// process and exposes a REST API.
//
// The package does not plan trips itself. It drives the engine from the
// outside: the engine subpackage assembles the commands that build a routing
// graph and launch or stop the process, and this package talks to the running
// engine's HTTP endpoint and turns its JSON and encoded-polyline responses
// into tabular and spatial results.
//
// # Driving a local engine
//
//	cfg := config.Defaults().Engine
//	cfg.JarPath = jar
//	cfg.DataDir = dir
//
//	eng, _ := engine.New(ctx, cfg)
//	_ = eng.BuildGraph(ctx)
//	_ = eng.Start(ctx)
//	_ = eng.WaitReady(ctx)
//	defer eng.Stop()
//
// # Querying
//
//	conn, _ := otp.Connect(config.Defaults().Connection)
//	plan, err := conn.Plan(otp.PlanRequest{
//	    From:  otp.LatLon{Lat: 50.64590, Lon: -1.17502},
//	    To:    otp.LatLon{Lat: 50.72266, Lon: -1.15339},
//	    Modes: []string{"WALK", "TRANSIT"},
//	})
//
// Leg geometries decode to orb line strings via Leg.Geometry, and
// Connection.Isochrone returns GeoJSON feature collections. The formatter
// subpackage renders either as JSON, CSV or GeoJSON for CLI use.
//
// Graph building, routing and the REST surface are owned entirely by the
// engine; none of it is reimplemented here.
package otp
