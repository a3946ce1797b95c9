// Package docs holds the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "consumes": [
        "application/json"
    ],
    "produces": [
        "application/json"
    ],
    "paths": {
        "/v1/tournaments": {
            "get": {
                "tags": [
                    "tournaments"
                ],
                "summary": "List tournaments",
                "parameters": [
                    {
                        "name": "name",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "tournaments": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Tournament"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "tournaments"
                ],
                "summary": "Create tournament",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Tournament"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "tournament": {
                                    "$ref": "#/definitions/models.Tournament"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/tournaments/{tournamentID}": {
            "get": {
                "tags": [
                    "tournaments"
                ],
                "summary": "Get tournament",
                "parameters": [
                    {
                        "name": "tournamentID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "tournament": {
                                    "$ref": "#/definitions/models.Tournament"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "tournaments"
                ],
                "summary": "Delete tournament",
                "parameters": [
                    {
                        "name": "tournamentID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "tournaments"
                ],
                "summary": "Update tournament",
                "parameters": [
                    {
                        "name": "tournamentID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Tournament"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "tournament": {
                                    "$ref": "#/definitions/models.Tournament"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/teams": {
            "get": {
                "tags": [
                    "teams"
                ],
                "summary": "List teams",
                "parameters": [
                    {
                        "name": "name",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "tournament_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "teams": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Team"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "teams"
                ],
                "summary": "Create team",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Team"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "team": {
                                    "$ref": "#/definitions/models.Team"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/teams/{teamID}": {
            "get": {
                "tags": [
                    "teams"
                ],
                "summary": "Get team",
                "parameters": [
                    {
                        "name": "teamID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "team": {
                                    "$ref": "#/definitions/models.Team"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "teams"
                ],
                "summary": "Delete team",
                "parameters": [
                    {
                        "name": "teamID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "teams"
                ],
                "summary": "Update team",
                "parameters": [
                    {
                        "name": "teamID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Team"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "team": {
                                    "$ref": "#/definitions/models.Team"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/speakers": {
            "get": {
                "tags": [
                    "speakers"
                ],
                "summary": "List speakers",
                "parameters": [
                    {
                        "name": "name",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "team_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "speakers": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Speaker"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "speakers"
                ],
                "summary": "Create speaker",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Speaker"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "speaker": {
                                    "$ref": "#/definitions/models.Speaker"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/speakers/{speakerID}": {
            "get": {
                "tags": [
                    "speakers"
                ],
                "summary": "Get speaker",
                "parameters": [
                    {
                        "name": "speakerID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "speaker": {
                                    "$ref": "#/definitions/models.Speaker"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "speakers"
                ],
                "summary": "Delete speaker",
                "parameters": [
                    {
                        "name": "speakerID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "speakers"
                ],
                "summary": "Update speaker",
                "parameters": [
                    {
                        "name": "speakerID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Speaker"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "speaker": {
                                    "$ref": "#/definitions/models.Speaker"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/judges": {
            "get": {
                "tags": [
                    "judges"
                ],
                "summary": "List judges",
                "parameters": [
                    {
                        "name": "name",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "tournament_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "judges": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Judge"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "judges"
                ],
                "summary": "Create judge",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Judge"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "judge": {
                                    "$ref": "#/definitions/models.Judge"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/judges/{judgeID}": {
            "get": {
                "tags": [
                    "judges"
                ],
                "summary": "Get judge",
                "parameters": [
                    {
                        "name": "judgeID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "judge": {
                                    "$ref": "#/definitions/models.Judge"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "judges"
                ],
                "summary": "Delete judge",
                "parameters": [
                    {
                        "name": "judgeID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "judges"
                ],
                "summary": "Update judge",
                "parameters": [
                    {
                        "name": "judgeID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Judge"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "judge": {
                                    "$ref": "#/definitions/models.Judge"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/rounds": {
            "get": {
                "tags": [
                    "rounds"
                ],
                "summary": "List rounds",
                "parameters": [
                    {
                        "name": "name",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "tournament_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "rounds": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Round"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "rounds"
                ],
                "summary": "Create round",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Round"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "round": {
                                    "$ref": "#/definitions/models.Round"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/rounds/{roundID}": {
            "get": {
                "tags": [
                    "rounds"
                ],
                "summary": "Get round",
                "parameters": [
                    {
                        "name": "roundID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "round": {
                                    "$ref": "#/definitions/models.Round"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "rounds"
                ],
                "summary": "Delete round",
                "parameters": [
                    {
                        "name": "roundID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "rounds"
                ],
                "summary": "Update round",
                "parameters": [
                    {
                        "name": "roundID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Round"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "round": {
                                    "$ref": "#/definitions/models.Round"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/motions": {
            "get": {
                "tags": [
                    "motions"
                ],
                "summary": "List motions",
                "parameters": [
                    {
                        "name": "round_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "text",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "motions": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Motion"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "motions"
                ],
                "summary": "Create motion",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Motion"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "motion": {
                                    "$ref": "#/definitions/models.Motion"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/motions/{motionID}": {
            "get": {
                "tags": [
                    "motions"
                ],
                "summary": "Get motion",
                "parameters": [
                    {
                        "name": "motionID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "motion": {
                                    "$ref": "#/definitions/models.Motion"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "motions"
                ],
                "summary": "Delete motion",
                "parameters": [
                    {
                        "name": "motionID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "motions"
                ],
                "summary": "Update motion",
                "parameters": [
                    {
                        "name": "motionID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Motion"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "motion": {
                                    "$ref": "#/definitions/models.Motion"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/debates": {
            "get": {
                "tags": [
                    "debates"
                ],
                "summary": "List debates",
                "parameters": [
                    {
                        "name": "round_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "debates": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Debate"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "debates"
                ],
                "summary": "Create debate",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Debate"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "debate": {
                                    "$ref": "#/definitions/models.Debate"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/debates/{debateID}": {
            "get": {
                "tags": [
                    "debates"
                ],
                "summary": "Get debate",
                "parameters": [
                    {
                        "name": "debateID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "debate": {
                                    "$ref": "#/definitions/models.Debate"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "debates"
                ],
                "summary": "Delete debate",
                "parameters": [
                    {
                        "name": "debateID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "debates"
                ],
                "summary": "Update debate",
                "parameters": [
                    {
                        "name": "debateID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Debate"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "debate": {
                                    "$ref": "#/definitions/models.Debate"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/ballots": {
            "get": {
                "tags": [
                    "ballots"
                ],
                "summary": "List ballots",
                "parameters": [
                    {
                        "name": "debate_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "judge_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballots": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Ballot"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "ballots"
                ],
                "summary": "Create ballot",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Ballot"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot": {
                                    "$ref": "#/definitions/models.Ballot"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/ballots/{ballotID}": {
            "get": {
                "tags": [
                    "ballots"
                ],
                "summary": "Get ballot",
                "parameters": [
                    {
                        "name": "ballotID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot": {
                                    "$ref": "#/definitions/models.Ballot"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "ballots"
                ],
                "summary": "Delete ballot",
                "parameters": [
                    {
                        "name": "ballotID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "ballots"
                ],
                "summary": "Update ballot",
                "parameters": [
                    {
                        "name": "ballotID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Ballot"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot": {
                                    "$ref": "#/definitions/models.Ballot"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/ballot-speaker-points": {
            "get": {
                "tags": [
                    "ballots"
                ],
                "summary": "List ballot speaker points",
                "parameters": [
                    {
                        "name": "ballot_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "speaker_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot_speaker_points": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.BallotSpeakerPoints"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "ballots"
                ],
                "summary": "Create ballot speaker points",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.BallotSpeakerPoints"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot_speaker_points": {
                                    "$ref": "#/definitions/models.BallotSpeakerPoints"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/ballot-speaker-points/{pointsID}": {
            "get": {
                "tags": [
                    "ballots"
                ],
                "summary": "Get ballot speaker points",
                "parameters": [
                    {
                        "name": "pointsID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot_speaker_points": {
                                    "$ref": "#/definitions/models.BallotSpeakerPoints"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "ballots"
                ],
                "summary": "Delete ballot speaker points",
                "parameters": [
                    {
                        "name": "pointsID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/ballot-team-scores": {
            "get": {
                "tags": [
                    "ballots"
                ],
                "summary": "List ballot team scores",
                "parameters": [
                    {
                        "name": "ballot_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "team_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot_team_scores": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.BallotTeamScore"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "ballots"
                ],
                "summary": "Create ballot team score",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.BallotTeamScore"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot_team_score": {
                                    "$ref": "#/definitions/models.BallotTeamScore"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/ballot-team-scores/{scoreID}": {
            "get": {
                "tags": [
                    "ballots"
                ],
                "summary": "Get ballot team score",
                "parameters": [
                    {
                        "name": "scoreID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "ballot_team_score": {
                                    "$ref": "#/definitions/models.BallotTeamScore"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "ballots"
                ],
                "summary": "Delete ballot team score",
                "parameters": [
                    {
                        "name": "scoreID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/tags": {
            "get": {
                "tags": [
                    "tags"
                ],
                "summary": "List tags",
                "parameters": [
                    {
                        "name": "name",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "tournament_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "speaker_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "judge_id",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "tags": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Tag"
                                    }
                                }
                            }
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "tags"
                ],
                "summary": "Create tag",
                "parameters": [
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Tag"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "tag": {
                                    "$ref": "#/definitions/models.Tag"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/tags/{tagID}": {
            "get": {
                "tags": [
                    "tags"
                ],
                "summary": "Get tag",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "tag": {
                                    "$ref": "#/definitions/models.Tag"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "tags"
                ],
                "summary": "Delete tag",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "tags"
                ],
                "summary": "Update tag",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.Tag"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "tag": {
                                    "$ref": "#/definitions/models.Tag"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/tags/{tagID}/speakers": {
            "get": {
                "tags": [
                    "tags"
                ],
                "summary": "List tagged speakers",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "speakers": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Speaker"
                                    }
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "tags"
                ],
                "summary": "Tag speakers",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/services.AddTagSpeakersInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "speakers": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Speaker"
                                    }
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/tags/{tagID}/speakers/{speakerID}": {
            "delete": {
                "tags": [
                    "tags"
                ],
                "summary": "Untag a speaker",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "speakerID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/tags/{tagID}/judges": {
            "get": {
                "tags": [
                    "tags"
                ],
                "summary": "List tagged judges",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "judges": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Judge"
                                    }
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "tags"
                ],
                "summary": "Tag judges",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/services.AddTagJudgesInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "judges": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.Judge"
                                    }
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/tags/{tagID}/judges/{judgeID}": {
            "delete": {
                "tags": [
                    "tags"
                ],
                "summary": "Untag a judge",
                "parameters": [
                    {
                        "name": "tagID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "judgeID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/rounds/{roundID}/draw": {
            "get": {
                "tags": [
                    "draws"
                ],
                "summary": "Get the draw of a round",
                "parameters": [
                    {
                        "name": "roundID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "draw": {
                                    "$ref": "#/definitions/models.RoundDraw"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "draws"
                ],
                "summary": "Generate the draw of a round",
                "description": "Brackets teams by points from earlier rounds, shuffles each bracket and pulls teams up where needed.",
                "parameters": [
                    {
                        "name": "roundID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "input",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/services.GenerateDrawInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "draw": {
                                    "$ref": "#/definitions/models.RoundDraw"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "409": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    },
                    "422": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/v1/tournaments/{tournamentID}/standings": {
            "get": {
                "tags": [
                    "tournaments"
                ],
                "summary": "Team standings of a tournament",
                "parameters": [
                    {
                        "name": "tournamentID",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "standings": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/models.TeamStanding"
                                    }
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "error",
                        "schema": {
                            "$ref": "#/definitions/handlers.errorResponse"
                        }
                    }
                }
            }
        },
        "/ping": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.Tournament": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "abbreviation": {
                    "type": "string",
                    "x-nullable": true
                }
            }
        },
        "models.Speaker": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "team_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "models.Team": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "tournament_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "abbreviation": {
                    "type": "string",
                    "x-nullable": true
                },
                "speakers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Speaker"
                    }
                }
            }
        },
        "models.Judge": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "tournament_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "models.Round": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "tournament_id": {
                    "type": "integer"
                },
                "sequence": {
                    "type": "integer"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "draft",
                        "ready",
                        "in_progress",
                        "completed"
                    ]
                },
                "name": {
                    "type": "string"
                },
                "abbreviation": {
                    "type": "string",
                    "x-nullable": true
                }
            }
        },
        "models.Motion": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "round_id": {
                    "type": "integer"
                },
                "text": {
                    "type": "string"
                },
                "infoslide": {
                    "type": "string",
                    "x-nullable": true
                }
            }
        },
        "models.Debate": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "round_id": {
                    "type": "integer"
                }
            }
        },
        "models.Ballot": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "debate_id": {
                    "type": "integer"
                },
                "judge_id": {
                    "type": "integer"
                },
                "version": {
                    "type": "integer"
                }
            }
        },
        "models.BallotSpeakerPoints": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "ballot_id": {
                    "type": "integer"
                },
                "speaker_id": {
                    "type": "integer"
                },
                "speaker_position": {
                    "type": "integer"
                },
                "score": {
                    "type": "integer"
                }
            }
        },
        "models.BallotTeamScore": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "ballot_id": {
                    "type": "integer"
                },
                "team_id": {
                    "type": "integer"
                },
                "score": {
                    "type": "integer"
                }
            }
        },
        "models.Tag": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "tournament_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "models.TeamStanding": {
            "type": "object",
            "properties": {
                "team_id": {
                    "type": "integer"
                },
                "team_points": {
                    "type": "integer"
                },
                "speaker_points": {
                    "type": "integer"
                }
            }
        },
        "models.DrawTeam": {
            "type": "object",
            "properties": {
                "team_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "position": {
                    "type": "integer"
                }
            }
        },
        "models.DrawDebate": {
            "type": "object",
            "properties": {
                "debate_id": {
                    "type": "integer"
                },
                "teams": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.DrawTeam"
                    }
                }
            }
        },
        "models.RoundDraw": {
            "type": "object",
            "properties": {
                "round_id": {
                    "type": "integer"
                },
                "tournament_id": {
                    "type": "integer"
                },
                "debates": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.DrawDebate"
                    }
                }
            }
        },
        "services.GenerateDrawInput": {
            "type": "object",
            "properties": {
                "teams_per_matchup": {
                    "type": "integer"
                }
            }
        },
        "services.AddTagJudgesInput": {
            "type": "object",
            "properties": {
                "judge_ids": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            },
            "required": [
                "judge_ids"
            ]
        },
        "services.AddTagSpeakersInput": {
            "type": "object",
            "properties": {
                "speaker_ids": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            },
            "required": [
                "speaker_ids"
            ]
        },
        "handlers.errorResponse": {
            "type": "object",
            "properties": {
                "error": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tabbit API",
	Description:      "Debate tournament tabulation: entities, ballots, standings and round draws.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
