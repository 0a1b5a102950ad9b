/*Package backend implements the reflora REST backend.

The backend exposes user registration and login, and ownership-scoped CRUD
for three resources: sensors, sensor readings and alerts. Readings and
alerts belong to a sensor, a sensor belongs to a user; every operation on
a sensor or one of its children first resolves the sensor and verifies
ownership before touching the store. A sensor that does not exist and a
sensor owned by somebody else produce the same not-found answer.

The backend creates its postgres relations at startup. Cascading deletes
(user to sensors, sensor to readings and alerts) are enforced by foreign
key constraints in the store, not by application code.
*/
package backend
