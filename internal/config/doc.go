// Package config handles refkit.json parsing and validation.
//
// A project may place refkit.json next to its go.mod:
//
//	{
//	  "debug": true,
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "myapp",
//	    "subsystem": "refs",
//	    "labels": {"service": "web"}
//	  }
//	}
//
// Every field is optional. Load returns the defaults when the file is absent.
package config
