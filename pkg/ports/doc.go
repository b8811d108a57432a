/*
Package ports defines the driven ports (interfaces) of ringlens.

These interfaces decouple the scenario catalog, the view controller and the
session manager from concrete storage, clipboard and locking backends.

# Key Interfaces

  - ScenarioLoader: Loads the fixed scenario collection (embedded fixture, file, loam directory, URL).
  - StateStore: Persists and loads per-session ViewState.
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - Clipboard: Receives copied narrative text.
*/
package ports
