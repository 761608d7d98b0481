// @title RoboFriends API
// @version 1.0
// @description Directory of robot profiles: list, phone check and create.
// @BasePath /
package main
