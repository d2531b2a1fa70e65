// Package session suppresses and replays the change notifications of a collection.
//
// An EventRaiser is owned by one collection. While event raising is on, every mutation the collection
// reports through Notify is dispatched to the subscribed handlers right away. While it is off, mutations are
// silent and a Session remembers the contents the collection had when suppression started. Turning raising
// back on with analysis requested diffs that snapshot against the current contents and replays the result
// as if every suppressed mutation had raised its own notification.
package session
