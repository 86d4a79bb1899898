// Package flash models flash payloads delivered alongside navigations and
// normalizes them into queue-ready notifications.
//
// A flash payload is a small string-keyed record. Each key that matches one of
// the configured categories (success, error, warning, info, notification) holds
// either plain text or a structured record:
//
//	{
//	    "success": "Item saved successfully!",
//	    "notification": {
//	        "message": "Item #42 moved to trash",
//	        "type": "warning",
//	        "timeout": 10000,
//	        "actions": [
//	            {"label": "Undo", "name": "undo-delete", "payload": {"id": 42}},
//	            {"label": "View Trash", "method": "get", "url": "/trash"}
//	        ]
//	    }
//	}
//
// # Values
//
// DecodeValue accepts anything a host might hand over (strings, decoded JSON
// objects, raw JSON bytes or already typed Values) and reports whether it
// could be understood. Plain text becomes a Text value; objects become
// structured values whose optional fields stay unset when missing or invalid.
//
// # Actions
//
// Action is a tagged union. Named actions are dispatched to a registered
// handler, URL actions are performed as a navigation. When a decoded object
// carries both a name and a url/method pair, the name wins.
//
// # Normalization
//
// Normalize is a pure function that resolves the display color and fills
// timeout and closable from the configured Defaults:
//
//	n := flash.Normalize(flash.Text("Saved"), flash.KeySuccess, flash.Options{
//	    Defaults: flash.DefaultDefaults(),
//	    ColorMap: flash.DefaultColorMap(),
//	})
//	// n.Color == "success", n.Timeout == 5*time.Second, n.Closable == true
package flash
