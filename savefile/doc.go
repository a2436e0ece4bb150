// Package savefile reads and writes worlds of entities as JSON:
//
//	{
//	  "componentIdentifiers": {"example.com/game.Position": "Position"},
//	  "entities": [
//	    {"id": 0, "components": {"Position": {"x": 1.5, "y": 2}}}
//	  ]
//	}
//
// componentIdentifiers maps type ids to the short keys used under
// "components". Loading ignores components of unregistered types and
// fields no symbol declares.
package savefile
